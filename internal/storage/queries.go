package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Row models. Timestamps are UTC text in timeLayout.

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    string
}

type Transaction struct {
	ID          string
	UserID      string
	Type        string
	AmountCents int64
	Category    string
	Description string
	Date        string
	CreatedAt   string
}

type Budget struct {
	ID         string
	UserID     string
	Category   string
	LimitCents int64
	SpentCents int64
	Period     string
	CreatedAt  string
}

type Goal struct {
	ID           string
	UserID       string
	Name         string
	TargetCents  int64
	CurrentCents int64
	Deadline     string
	CreatedAt    string
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.AmountCents, &t.Category, &t.Description, &t.Date, &t.CreatedAt)
	return t, err
}

func scanBudget(row rowScanner) (Budget, error) {
	var b Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.LimitCents, &b.SpentCents, &b.Period, &b.CreatedAt)
	return b, err
}

func scanGoal(row rowScanner) (Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetCents, &g.CurrentCents, &g.Deadline, &g.CreatedAt)
	return g, err
}

// Users

const createUser = `-- name: CreateUser :one
INSERT INTO users (id, email, name, password_hash, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, email, name, password_hash, created_at
`

type CreateUserParams struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser, arg.ID, arg.Email, arg.Name, arg.PasswordHash, arg.CreatedAt)
	return scanUser(row)
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, name, password_hash, created_at
FROM users
WHERE email = ?
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	return scanUser(row)
}

// Transactions

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (id, user_id, type, amount_cents, category, description, date, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, user_id, type, amount_cents, category, description, date, created_at
`

type CreateTransactionParams struct {
	ID          string
	UserID      string
	Type        string
	AmountCents int64
	Category    string
	Description string
	Date        string
	CreatedAt   string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.ID, arg.UserID, arg.Type, arg.AmountCents, arg.Category, arg.Description, arg.Date, arg.CreatedAt)
	return scanTransaction(row)
}

const listTransactions = `-- name: ListTransactions :many
SELECT id, user_id, type, amount_cents, category, description, date, created_at
FROM transactions
WHERE user_id = ?
ORDER BY date DESC, created_at DESC
LIMIT ?
`

func (q *Queries) ListTransactions(ctx context.Context, userID string, limit int64) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteTransaction = `-- name: DeleteTransaction :execrows
DELETE FROM transactions
WHERE id = ? AND user_id = ?
`

func (q *Queries) DeleteTransaction(ctx context.Context, id, userID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTransaction, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Budgets

const createBudget = `-- name: CreateBudget :one
INSERT INTO budgets (id, user_id, category, limit_cents, spent_cents, period, created_at)
VALUES (?, ?, ?, ?, 0, ?, ?)
RETURNING id, user_id, category, limit_cents, spent_cents, period, created_at
`

type CreateBudgetParams struct {
	ID         string
	UserID     string
	Category   string
	LimitCents int64
	Period     string
	CreatedAt  string
}

func (q *Queries) CreateBudget(ctx context.Context, arg CreateBudgetParams) (Budget, error) {
	row := q.db.QueryRowContext(ctx, createBudget,
		arg.ID, arg.UserID, arg.Category, arg.LimitCents, arg.Period, arg.CreatedAt)
	return scanBudget(row)
}

const countBudgetsByCategory = `-- name: CountBudgetsByCategory :one
SELECT COUNT(*)
FROM budgets
WHERE user_id = ? AND category = ?
`

func (q *Queries) CountBudgetsByCategory(ctx context.Context, userID, category string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBudgetsByCategory, userID, category).Scan(&count)
	return count, err
}

const listBudgets = `-- name: ListBudgets :many
SELECT id, user_id, category, limit_cents, spent_cents, period, created_at
FROM budgets
WHERE user_id = ?
ORDER BY rowid
LIMIT ?
`

func (q *Queries) ListBudgets(ctx context.Context, userID string, limit int64) ([]Budget, error) {
	rows, err := q.db.QueryContext(ctx, listBudgets, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateBudget = `-- name: UpdateBudget :one
UPDATE budgets
SET category = ?, limit_cents = ?, period = ?
WHERE id = ? AND user_id = ?
RETURNING id, user_id, category, limit_cents, spent_cents, period, created_at
`

type UpdateBudgetParams struct {
	Category   string
	LimitCents int64
	Period     string
	ID         string
	UserID     string
}

func (q *Queries) UpdateBudget(ctx context.Context, arg UpdateBudgetParams) (Budget, error) {
	row := q.db.QueryRowContext(ctx, updateBudget, arg.Category, arg.LimitCents, arg.Period, arg.ID, arg.UserID)
	return scanBudget(row)
}

const incrementBudgetSpent = `-- name: IncrementBudgetSpent :execrows
UPDATE budgets
SET spent_cents = spent_cents + ?
WHERE user_id = ? AND category = ? AND spent_cents BETWEEN ? AND ?
`

// IncrementBudgetSpentParams skips rows whose spent_cents lies outside
// [Low, High], the range in which adding AmountCents stays an integer.
type IncrementBudgetSpentParams struct {
	AmountCents int64
	UserID      string
	Category    string
	Low         int64
	High        int64
}

func (q *Queries) IncrementBudgetSpent(ctx context.Context, arg IncrementBudgetSpentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, incrementBudgetSpent,
		arg.AmountCents, arg.UserID, arg.Category, arg.Low, arg.High)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countBudgetsSpentOutside = `-- name: CountBudgetsSpentOutside :one
SELECT COUNT(*)
FROM budgets
WHERE user_id = ? AND category = ? AND spent_cents NOT BETWEEN ? AND ?
`

func (q *Queries) CountBudgetsSpentOutside(ctx context.Context, userID, category string, low, high int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBudgetsSpentOutside, userID, category, low, high).Scan(&count)
	return count, err
}

const deleteBudget = `-- name: DeleteBudget :execrows
DELETE FROM budgets
WHERE id = ? AND user_id = ?
`

func (q *Queries) DeleteBudget(ctx context.Context, id, userID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteBudget, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Goals

const createGoal = `-- name: CreateGoal :one
INSERT INTO goals (id, user_id, name, target_cents, current_cents, deadline, created_at)
VALUES (?, ?, ?, ?, 0, ?, ?)
RETURNING id, user_id, name, target_cents, current_cents, deadline, created_at
`

type CreateGoalParams struct {
	ID          string
	UserID      string
	Name        string
	TargetCents int64
	Deadline    string
	CreatedAt   string
}

func (q *Queries) CreateGoal(ctx context.Context, arg CreateGoalParams) (Goal, error) {
	row := q.db.QueryRowContext(ctx, createGoal,
		arg.ID, arg.UserID, arg.Name, arg.TargetCents, arg.Deadline, arg.CreatedAt)
	return scanGoal(row)
}

const listGoals = `-- name: ListGoals :many
SELECT id, user_id, name, target_cents, current_cents, deadline, created_at
FROM goals
WHERE user_id = ?
ORDER BY rowid
LIMIT ?
`

func (q *Queries) ListGoals(ctx context.Context, userID string, limit int64) ([]Goal, error) {
	rows, err := q.db.QueryContext(ctx, listGoals, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const contributeGoal = `-- name: ContributeGoal :one
UPDATE goals
SET current_cents = current_cents + ?
WHERE id = ? AND user_id = ? AND current_cents BETWEEN ? AND ?
RETURNING id, user_id, name, target_cents, current_cents, deadline, created_at
`

type ContributeGoalParams struct {
	AmountCents int64
	ID          string
	UserID      string
	Low         int64
	High        int64
}

func (q *Queries) ContributeGoal(ctx context.Context, arg ContributeGoalParams) (Goal, error) {
	row := q.db.QueryRowContext(ctx, contributeGoal,
		arg.AmountCents, arg.ID, arg.UserID, arg.Low, arg.High)
	return scanGoal(row)
}

const goalExists = `-- name: GoalExists :one
SELECT EXISTS (SELECT 1 FROM goals WHERE id = ? AND user_id = ?)
`

func (q *Queries) GoalExists(ctx context.Context, id, userID string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, goalExists, id, userID).Scan(&exists)
	return exists, err
}

const deleteGoal = `-- name: DeleteGoal :execrows
DELETE FROM goals
WHERE id = ? AND user_id = ?
`

func (q *Queries) DeleteGoal(ctx context.Context, id, userID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteGoal, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
