package core

import (
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	Monthly BudgetPeriod = "monthly"
	Weekly  BudgetPeriod = "weekly"
)

// MaxListSize caps every list read against the store.
const MaxListSize = 1000

type (
	TransactionType string

	// BudgetPeriod is a label only; nothing resets spent at period boundaries.
	BudgetPeriod string

	User struct {
		ID           string    `json:"id"`
		Email        string    `json:"email"`
		Name         string    `json:"name"`
		PasswordHash string    `json:"-"`
		CreatedAt    time.Time `json:"created_at"`
	}

	Transaction struct {
		ID          string          `json:"id"`
		UserID      string          `json:"user_id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description,omitempty"`
		Date        time.Time       `json:"date"`
		CreatedAt   time.Time       `json:"created_at"`
	}

	Budget struct {
		ID        string       `json:"id"`
		UserID    string       `json:"user_id"`
		Category  string       `json:"category"`
		Limit     Money        `json:"limit"`
		Spent     Money        `json:"spent"`
		Period    BudgetPeriod `json:"period"`
		CreatedAt time.Time    `json:"created_at"`
	}

	Goal struct {
		ID            string    `json:"id"`
		UserID        string    `json:"user_id"`
		Name          string    `json:"name"`
		TargetAmount  Money     `json:"target_amount"`
		CurrentAmount Money     `json:"current_amount"`
		Deadline      time.Time `json:"deadline"`
		CreatedAt     time.Time `json:"created_at"`
	}
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (p BudgetPeriod) Valid() bool {
	return p == Monthly || p == Weekly
}

func invalid(format string, args ...any) error {
	return Errorf(ErrInvalidArgument, format, args...)
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return invalid("unknown transaction type %q", t.Type)
	}
	if t.Amount.IsNegative() {
		return invalid("amount must not be negative")
	}
	if strings.TrimSpace(t.Category) == "" {
		return invalid("category is required")
	}
	if t.Date.IsZero() {
		return invalid("date is required")
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return invalid("category is required")
	}
	if b.Limit.IsNegative() {
		return invalid("limit must not be negative")
	}
	if !b.Period.Valid() {
		return invalid("unknown budget period %q", b.Period)
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return invalid("name is required")
	}
	if g.TargetAmount.IsNegative() {
		return invalid("target amount must not be negative")
	}
	if g.Deadline.IsZero() {
		return invalid("deadline is required")
	}
	return nil
}
