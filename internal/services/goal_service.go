package services

import (
	"context"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

type GoalService struct {
	store GoalStore
	pub   EventPublisher
	now   func() time.Time
}

func NewGoalService(store GoalStore, pub EventPublisher) *GoalService {
	return &GoalService{store: store, pub: pub, now: time.Now}
}

// Create adds a savings goal with nothing saved yet.
func (s *GoalService) Create(ctx context.Context, userID string, g core.Goal) (core.Goal, error) {
	g.ID = core.NewID()
	g.UserID = userID
	g.CurrentAmount = core.Money{}
	g.Deadline = g.Deadline.UTC()
	g.CreatedAt = s.now().UTC()
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	saved, err := s.store.CreateGoal(ctx, g)
	if err != nil {
		return core.Goal{}, err
	}

	log.FromContext(ctx).WithComponent(log.ComponentLedger).InfoContext(ctx, "Goal created",
		log.NewFields().WithOperation(log.OpCreate).WithRecord(userID, saved.ID).ToSlice()...)

	e := amqp.NewLedgerEvent(amqp.GoalCreated, userID, saved.ID)
	e.AmountCents = saved.TargetAmount.Cents
	publish(ctx, s.pub, e)

	return saved, nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]core.Goal, error) {
	return s.store.ListGoals(ctx, userID, core.MaxListSize)
}

// Contribute adds amount to the goal's current amount. Zero and negative
// amounts are accepted, and the total may pass the target.
func (s *GoalService) Contribute(ctx context.Context, userID, rawID string, amount core.Money) (core.Goal, error) {
	id, err := core.ParseID(rawID)
	if err != nil {
		return core.Goal{}, err
	}

	saved, err := s.store.ContributeGoal(ctx, id, userID, amount)
	if err != nil {
		return core.Goal{}, err
	}

	log.FromContext(ctx).WithComponent(log.ComponentLedger).InfoContext(ctx, "Goal contribution recorded",
		log.NewFields().
			WithOperation(log.OpContribute).
			WithRecord(userID, id).
			WithAmount(saved.Name, amount.Cents).
			ToSlice()...)

	e := amqp.NewLedgerEvent(amqp.GoalContributed, userID, id)
	e.AmountCents = amount.Cents
	publish(ctx, s.pub, e)

	return saved, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, rawID string) error {
	id, err := core.ParseID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteGoal(ctx, id, userID); err != nil {
		return err
	}

	log.FromContext(ctx).WithComponent(log.ComponentLedger).InfoContext(ctx, "Goal deleted",
		log.NewFields().WithOperation(log.OpDelete).WithRecord(userID, id).ToSlice()...)
	publish(ctx, s.pub, amqp.NewLedgerEvent(amqp.GoalDeleted, userID, id))
	return nil
}
