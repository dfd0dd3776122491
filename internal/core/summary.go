package core

import "time"

// RecentWindow is the trailing span covered by the recent_* totals.
const RecentWindow = 30 * 24 * time.Hour

// Stats is the snapshot served by the statistics endpoint.
type Stats struct {
	TotalIncome      Money            `json:"total_income"`
	TotalExpenses    Money            `json:"total_expenses"`
	Balance          Money            `json:"balance"`
	CategoryExpenses map[string]Money `json:"category_expenses"`
	RecentIncome     Money            `json:"recent_income"`
	RecentExpenses   Money            `json:"recent_expenses"`
	TransactionCount int              `json:"transaction_count"`
}

// Summarize folds txs into a Stats snapshot evaluated at now. A transaction
// counts as recent when its date is at or after now minus RecentWindow; both
// sides are compared in UTC. A total that leaves the int64 range yields
// ErrInvalidArgument instead of a wrapped value.
func Summarize(txs []Transaction, now time.Time) (Stats, error) {
	cutoff := now.UTC().Add(-RecentWindow)
	s := Stats{
		CategoryExpenses: make(map[string]Money),
		TransactionCount: len(txs),
	}
	add := func(total *Money, m Money) error {
		sum, err := total.Add(m)
		if err != nil {
			return err
		}
		*total = sum
		return nil
	}
	for _, t := range txs {
		recent := !t.Date.UTC().Before(cutoff)
		switch t.Type {
		case Income:
			if err := add(&s.TotalIncome, t.Amount); err != nil {
				return Stats{}, err
			}
			if recent {
				if err := add(&s.RecentIncome, t.Amount); err != nil {
					return Stats{}, err
				}
			}
		case Expense:
			if err := add(&s.TotalExpenses, t.Amount); err != nil {
				return Stats{}, err
			}
			category := s.CategoryExpenses[t.Category]
			if err := add(&category, t.Amount); err != nil {
				return Stats{}, err
			}
			s.CategoryExpenses[t.Category] = category
			if recent {
				if err := add(&s.RecentExpenses, t.Amount); err != nil {
					return Stats{}, err
				}
			}
		}
	}
	balance, err := s.TotalIncome.Sub(s.TotalExpenses)
	if err != nil {
		return Stats{}, err
	}
	s.Balance = balance
	return s, nil
}
