package services

import (
	"context"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

type TransactionService struct {
	store TransactionStore
	pub   EventPublisher
	now   func() time.Time
}

func NewTransactionService(store TransactionStore, pub EventPublisher) *TransactionService {
	return &TransactionService{store: store, pub: pub, now: time.Now}
}

// Create stores t for userID. An expense also adds its amount to the spent
// total of the user's budget for the same category, when one exists.
func (s *TransactionService) Create(ctx context.Context, userID string, t core.Transaction) (core.Transaction, error) {
	t.ID = core.NewID()
	t.UserID = userID
	t.Date = t.Date.UTC()
	t.CreatedAt = s.now().UTC()
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	saved, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, err
	}

	logger := log.FromContext(ctx).WithComponent(log.ComponentLedger)
	fields := log.NewFields().
		WithOperation(log.OpCreate).
		WithRecord(userID, saved.ID).
		WithAmount(saved.Category, saved.Amount.Cents)
	logger.InfoContext(ctx, "Transaction created", fields.ToSlice()...)

	if saved.Type == core.Expense {
		// The transaction is already committed; a failed increment is
		// reported but does not fail the request.
		n, err := s.store.IncrementBudgetSpent(ctx, userID, saved.Category, saved.Amount)
		switch {
		case err != nil:
			logger.ErrorContext(ctx, "Failed to update budget spent", fields.WithError(err).ToSlice()...)
		case n == 0:
			logger.DebugContext(ctx, "No budget for expense category", fields.ToSlice()...)
		}
	}

	e := amqp.NewLedgerEvent(amqp.TransactionCreated, userID, saved.ID)
	e.Category = saved.Category
	e.AmountCents = saved.Amount.Cents
	publish(ctx, s.pub, e)

	return saved, nil
}

// List returns the user's most recent transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userID string) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, userID, core.MaxListSize)
}

// Delete removes an owned transaction. Budget spent totals are not rolled
// back.
func (s *TransactionService) Delete(ctx context.Context, userID, rawID string) error {
	id, err := core.ParseID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, id, userID); err != nil {
		return err
	}

	log.FromContext(ctx).WithComponent(log.ComponentLedger).InfoContext(ctx, "Transaction deleted",
		log.NewFields().WithOperation(log.OpDelete).WithRecord(userID, id).ToSlice()...)
	publish(ctx, s.pub, amqp.NewLedgerEvent(amqp.TransactionDeleted, userID, id))
	return nil
}
