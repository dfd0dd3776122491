package core

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Type:     Expense,
		Amount:   Money{Cents: 100},
		Category: "Food",
		Date:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, valid.Validate())

	zero := valid
	zero.Amount = Money{}
	assert.NoError(t, zero.Validate())

	tests := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"unknown type", func(tx *Transaction) { tx.Type = "transfer" }},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -1} }},
		{"blank category", func(tx *Transaction) { tx.Category = "   " }},
		{"missing date", func(tx *Transaction) { tx.Date = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			assert.ErrorIs(t, tx.Validate(), ErrInvalidArgument)
		})
	}
}

func TestBudgetValidate(t *testing.T) {
	valid := Budget{Category: "Food", Limit: Money{Cents: 10000}, Period: Monthly}
	assert.NoError(t, valid.Validate())

	b := valid
	b.Period = "yearly"
	assert.ErrorIs(t, b.Validate(), ErrInvalidArgument)

	b = valid
	b.Limit = Money{Cents: -1}
	assert.ErrorIs(t, b.Validate(), ErrInvalidArgument)

	b = valid
	b.Category = ""
	assert.ErrorIs(t, b.Validate(), ErrInvalidArgument)
}

func TestGoalValidate(t *testing.T) {
	valid := Goal{Name: "Holiday", TargetAmount: Money{Cents: 100000}, Deadline: time.Now()}
	assert.NoError(t, valid.Validate())

	g := valid
	g.Deadline = time.Time{}
	assert.ErrorIs(t, g.Validate(), ErrInvalidArgument)

	g = valid
	g.Name = " "
	assert.ErrorIs(t, g.Validate(), ErrInvalidArgument)
}

func TestParseID(t *testing.T) {
	id := NewID()
	got, err := ParseID(id)
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseID("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestErrorDetail(t *testing.T) {
	err := fmt.Errorf("create budget: %w", Errorf(ErrConflict, "Budget already exists for this category"))

	assert.ErrorIs(t, err, ErrConflict)
	detail, ok := Detail(err)
	assert.True(t, ok)
	assert.Equal(t, "Budget already exists for this category", detail)

	_, ok = Detail(errors.New("plain"))
	assert.False(t, ok)
}
