package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/metrics"
)

// Sizes of the data sets the advice prompt is built from.
const (
	adviceTransactions = 50
	adviceBudgets      = 100
	adviceGoals        = 100
)

// AdviceStore is the read side AdviceService needs.
type AdviceStore interface {
	ListTransactions(ctx context.Context, userID string, limit int) ([]core.Transaction, error)
	ListBudgets(ctx context.Context, userID string, limit int) ([]core.Budget, error)
	ListGoals(ctx context.Context, userID string, limit int) ([]core.Goal, error)
}

type AdviceService struct {
	store     AdviceStore
	generator AdviceGenerator
	now       func() time.Time
}

// NewAdviceService builds the service. A nil generator means no model is
// configured and every request gets core.AdviceNotConfigured.
func NewAdviceService(store AdviceStore, generator AdviceGenerator) *AdviceService {
	return &AdviceService{store: store, generator: generator, now: time.Now}
}

// Advice returns advice text for the user. It never fails: a store or
// generator error degrades to core.AdviceFallback.
func (s *AdviceService) Advice(ctx context.Context, userID, userContext string) string {
	if s.generator == nil {
		metrics.RecordAdvice(metrics.AdviceNotConfigured)
		return core.AdviceNotConfigured
	}

	prompt, err := s.prompt(ctx, userID, userContext)
	if err != nil {
		return s.fallback(ctx, userID, "Advice data unavailable", err)
	}

	advice, err := s.generator.Generate(ctx, core.AdviceSystemPrompt, prompt)
	if err != nil {
		return s.fallback(ctx, userID, "Advice generation failed", err)
	}

	metrics.RecordAdvice(metrics.AdviceGenerated)
	return advice
}

func (s *AdviceService) prompt(ctx context.Context, userID, userContext string) (string, error) {
	var (
		txs     []core.Transaction
		budgets []core.Budget
		goals   []core.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		txs, err = s.store.ListTransactions(gctx, userID, adviceTransactions)
		return err
	})
	g.Go(func() (err error) {
		budgets, err = s.store.ListBudgets(gctx, userID, adviceBudgets)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.store.ListGoals(gctx, userID, adviceGoals)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	stats, err := core.Summarize(txs, s.now())
	if err != nil {
		return "", err
	}
	return core.BuildAdvicePrompt(core.AdviceInput{
		Stats:   stats,
		Budgets: budgets,
		Goals:   goals,
		Context: userContext,
	}), nil
}

func (s *AdviceService) fallback(ctx context.Context, userID, msg string, err error) string {
	fields := log.NewFields().WithOperation(log.OpGenerate).WithError(err)
	fields[log.FieldUserID] = userID
	log.FromContext(ctx).WithComponent(log.ComponentAdvice).WarnContext(ctx, msg, fields.ToSlice()...)
	metrics.RecordAdvice(metrics.AdviceFallback)
	return core.AdviceFallback
}
