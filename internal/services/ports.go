package services

import (
	"context"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

type UserStore interface {
	CreateUser(ctx context.Context, u core.User) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
}

type TransactionStore interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]core.Transaction, error)
	DeleteTransaction(ctx context.Context, id, userID string) error
	IncrementBudgetSpent(ctx context.Context, userID, category string, amount core.Money) (int64, error)
}

type BudgetStore interface {
	CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	BudgetExists(ctx context.Context, userID, category string) (bool, error)
	ListBudgets(ctx context.Context, userID string, limit int) ([]core.Budget, error)
	UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	DeleteBudget(ctx context.Context, id, userID string) error
}

type GoalStore interface {
	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	ListGoals(ctx context.Context, userID string, limit int) ([]core.Goal, error)
	ContributeGoal(ctx context.Context, id, userID string, amount core.Money) (core.Goal, error)
	DeleteGoal(ctx context.Context, id, userID string) error
}

// Store is everything the services need from persistence.
type Store interface {
	UserStore
	TransactionStore
	BudgetStore
	GoalStore
}

type EventPublisher interface {
	Publish(ctx context.Context, e amqp.LedgerEvent) error
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AdviceGenerator turns a prompt into advice text. Any error is treated as
// a soft failure by AdviceService.
type AdviceGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
