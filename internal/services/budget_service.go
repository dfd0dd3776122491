package services

import (
	"context"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

type BudgetService struct {
	store BudgetStore
	pub   EventPublisher
	now   func() time.Time
}

func NewBudgetService(store BudgetStore, pub EventPublisher) *BudgetService {
	return &BudgetService{store: store, pub: pub, now: time.Now}
}

// Create adds a budget with spent set to zero. Only one budget per category
// is allowed for a user.
func (s *BudgetService) Create(ctx context.Context, userID string, b core.Budget) (core.Budget, error) {
	b.ID = core.NewID()
	b.UserID = userID
	b.Spent = core.Money{}
	b.CreatedAt = s.now().UTC()
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	exists, err := s.store.BudgetExists(ctx, userID, b.Category)
	if err != nil {
		return core.Budget{}, err
	}
	if exists {
		return core.Budget{}, core.Errorf(core.ErrConflict, "Budget already exists for this category")
	}

	saved, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		return core.Budget{}, err
	}

	log.FromContext(ctx).WithComponent(log.ComponentLedger).InfoContext(ctx, "Budget created",
		log.NewFields().
			WithOperation(log.OpCreate).
			WithRecord(userID, saved.ID).
			WithAmount(saved.Category, saved.Limit.Cents).
			ToSlice()...)

	e := amqp.NewLedgerEvent(amqp.BudgetCreated, userID, saved.ID)
	e.Category = saved.Category
	e.AmountCents = saved.Limit.Cents
	publish(ctx, s.pub, e)

	return saved, nil
}

func (s *BudgetService) List(ctx context.Context, userID string) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx, userID, core.MaxListSize)
}

// Update replaces category, limit and period. Spent is preserved and the
// per-category uniqueness is not re-checked.
func (s *BudgetService) Update(ctx context.Context, userID, rawID string, b core.Budget) (core.Budget, error) {
	id, err := core.ParseID(rawID)
	if err != nil {
		return core.Budget{}, err
	}
	b.ID = id
	b.UserID = userID
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	saved, err := s.store.UpdateBudget(ctx, b)
	if err != nil {
		return core.Budget{}, err
	}

	log.FromContext(ctx).WithComponent(log.ComponentLedger).InfoContext(ctx, "Budget updated",
		log.NewFields().
			WithOperation(log.OpUpdate).
			WithRecord(userID, saved.ID).
			WithAmount(saved.Category, saved.Limit.Cents).
			ToSlice()...)

	e := amqp.NewLedgerEvent(amqp.BudgetUpdated, userID, saved.ID)
	e.Category = saved.Category
	e.AmountCents = saved.Limit.Cents
	publish(ctx, s.pub, e)

	return saved, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, rawID string) error {
	id, err := core.ParseID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteBudget(ctx, id, userID); err != nil {
		return err
	}

	log.FromContext(ctx).WithComponent(log.ComponentLedger).InfoContext(ctx, "Budget deleted",
		log.NewFields().WithOperation(log.OpDelete).WithRecord(userID, id).ToSlice()...)
	publish(ctx, s.pub, amqp.NewLedgerEvent(amqp.BudgetDeleted, userID, id))
	return nil
}
