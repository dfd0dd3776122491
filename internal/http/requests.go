package http

import (
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/validation"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

type TransactionRequest struct {
	Type        string   `json:"type" validate:"required,oneof=income expense"`
	Amount      *float64 `json:"amount" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,notblank,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Date        string   `json:"date" validate:"required"`
}

type BudgetRequest struct {
	Category string   `json:"category" validate:"required,notblank,max=100"`
	Limit    *float64 `json:"limit" validate:"required,gte=0"`
	Period   string   `json:"period" validate:"required,oneof=monthly weekly"`
}

type GoalRequest struct {
	Name         string   `json:"name" validate:"required,notblank,max=100"`
	TargetAmount *float64 `json:"target_amount" validate:"required,gte=0"`
	Deadline     string   `json:"deadline" validate:"required"`
}

type AdviceRequest struct {
	Context string `json:"context" validate:"max=2000"`
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}

// timestampLayouts are tried in order. Values without a zone are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTimestamp reads an ISO-8601 date or date-time for field.
func parseTimestamp(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, validation.NewRequestValidationError(validation.FieldError{
		Field:   field,
		Tag:     "datetime",
		Message: field + " must be an ISO-8601 date or date-time",
	})
}

func parseAmount(field string, f *float64) (core.Money, error) {
	m, err := core.MoneyFromFloat(*f)
	if err != nil {
		return core.Money{}, validation.NewRequestValidationError(validation.FieldError{
			Field:   field,
			Tag:     "range",
			Message: field + " is out of range",
		})
	}
	return m, nil
}

func (req TransactionRequest) toCore() (core.Transaction, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return core.Transaction{}, err
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := parseTimestamp("date", req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Type:        core.TransactionType(req.Type),
		Amount:      amount,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
	}, nil
}

func (req BudgetRequest) toCore() (core.Budget, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return core.Budget{}, err
	}
	limit, err := parseAmount("limit", req.Limit)
	if err != nil {
		return core.Budget{}, err
	}
	return core.Budget{
		Category: strings.TrimSpace(req.Category),
		Limit:    limit,
		Period:   core.BudgetPeriod(req.Period),
	}, nil
}

func (req GoalRequest) toCore() (core.Goal, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return core.Goal{}, err
	}
	target, err := parseAmount("target_amount", req.TargetAmount)
	if err != nil {
		return core.Goal{}, err
	}
	deadline, err := parseTimestamp("deadline", req.Deadline)
	if err != nil {
		return core.Goal{}, err
	}
	return core.Goal{
		Name:         strings.TrimSpace(req.Name),
		TargetAmount: target,
		Deadline:     deadline,
	}, nil
}
