package services

import (
	"context"
	"time"

	"fintrack/internal/core"
)

type StatsService struct {
	store TransactionStore
	now   func() time.Time
}

func NewStatsService(store TransactionStore) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

// Stats summarizes the user's most recent transactions.
func (s *StatsService) Stats(ctx context.Context, userID string) (core.Stats, error) {
	txs, err := s.store.ListTransactions(ctx, userID, core.MaxListSize)
	if err != nil {
		return core.Stats{}, err
	}
	return core.Summarize(txs, s.now())
}
