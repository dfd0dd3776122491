package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// timeLayout has a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := dbPath + dsnPragmas
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping backs the readiness probe.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		slog.Warn("Unparseable timestamp in database", "value", s, "error", err)
		return time.Time{}
	}
	return t.UTC()
}

// addRange returns the interval a stored total must lie in for
// total+amount to stay inside int64.
func addRange(amount int64) (low, high int64) {
	if amount >= 0 {
		return math.MinInt64, math.MaxInt64 - amount
	}
	return math.MinInt64 - amount, math.MaxInt64
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// notFound maps an empty result onto core.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return core.Errorf(core.ErrNotFound, "%s not found", what)
	}
	return err
}

func (u User) toCore() core.User {
	return core.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    parseTime(u.CreatedAt),
	}
}

func (t Transaction) toCore() core.Transaction {
	return core.Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        core.TransactionType(t.Type),
		Amount:      core.Money{Cents: t.AmountCents},
		Category:    t.Category,
		Description: t.Description,
		Date:        parseTime(t.Date),
		CreatedAt:   parseTime(t.CreatedAt),
	}
}

func (b Budget) toCore() core.Budget {
	return core.Budget{
		ID:        b.ID,
		UserID:    b.UserID,
		Category:  b.Category,
		Limit:     core.Money{Cents: b.LimitCents},
		Spent:     core.Money{Cents: b.SpentCents},
		Period:    core.BudgetPeriod(b.Period),
		CreatedAt: parseTime(b.CreatedAt),
	}
}

func (g Goal) toCore() core.Goal {
	return core.Goal{
		ID:            g.ID,
		UserID:        g.UserID,
		Name:          g.Name,
		TargetAmount:  core.Money{Cents: g.TargetCents},
		CurrentAmount: core.Money{Cents: g.CurrentCents},
		Deadline:      parseTime(g.Deadline),
		CreatedAt:     parseTime(g.CreatedAt),
	}
}

// CreateUser stores u. A duplicate email yields core.ErrConflict.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	row, err := r.queries.CreateUser(ctx, CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    formatTime(u.CreatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return core.User{}, core.Errorf(core.ErrConflict, "Email already registered")
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	return row.toCore(), nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return core.User{}, fmt.Errorf("get user by email: %w", notFound(err, "User"))
	}
	return row.toCore(), nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	row, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        string(t.Type),
		AmountCents: t.Amount.Cents,
		Category:    t.Category,
		Description: t.Description,
		Date:        formatTime(t.Date),
		CreatedAt:   formatTime(t.CreatedAt),
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Transaction saved to SQLite",
		"id", row.ID,
		"type", row.Type,
		"amount_cents", row.AmountCents,
		"category", row.Category)

	return row.toCore(), nil
}

// ListTransactions returns the newest limit transactions of userID by date.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx, userID, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]core.Transaction, len(rows))
	for i, row := range rows {
		out[i] = row.toCore()
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id, userID string) error {
	n, err := r.queries.DeleteTransaction(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return core.Errorf(core.ErrNotFound, "Transaction not found")
	}
	return nil
}

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	row, err := r.queries.CreateBudget(ctx, CreateBudgetParams{
		ID:         b.ID,
		UserID:     b.UserID,
		Category:   b.Category,
		LimitCents: b.Limit.Cents,
		Period:     string(b.Period),
		CreatedAt:  formatTime(b.CreatedAt),
	})
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return row.toCore(), nil
}

func (r *SQLiteRepository) BudgetExists(ctx context.Context, userID, category string) (bool, error) {
	n, err := r.queries.CountBudgetsByCategory(ctx, userID, category)
	if err != nil {
		return false, fmt.Errorf("count budgets: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context, userID string, limit int) ([]core.Budget, error) {
	rows, err := r.queries.ListBudgets(ctx, userID, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	out := make([]core.Budget, len(rows))
	for i, row := range rows {
		out[i] = row.toCore()
	}
	return out, nil
}

// UpdateBudget overwrites category, limit and period of an owned budget.
// Spent and created_at are left untouched.
func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	row, err := r.queries.UpdateBudget(ctx, UpdateBudgetParams{
		Category:   b.Category,
		LimitCents: b.Limit.Cents,
		Period:     string(b.Period),
		ID:         b.ID,
		UserID:     b.UserID,
	})
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", notFound(err, "Budget"))
	}
	return row.toCore(), nil
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id, userID string) error {
	n, err := r.queries.DeleteBudget(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n == 0 {
		return core.Errorf(core.ErrNotFound, "Budget not found")
	}
	return nil
}

// IncrementBudgetSpent adds amount to the spent total of the user's budget
// for category in a single statement. It returns the number of budgets
// touched; zero is not an error. A budget whose total would leave the
// int64 range is left unchanged and reported as core.ErrInvalidArgument.
func (r *SQLiteRepository) IncrementBudgetSpent(ctx context.Context, userID, category string, amount core.Money) (int64, error) {
	low, high := addRange(amount.Cents)
	n, err := r.queries.IncrementBudgetSpent(ctx, IncrementBudgetSpentParams{
		AmountCents: amount.Cents,
		UserID:      userID,
		Category:    category,
		Low:         low,
		High:        high,
	})
	if err != nil {
		return 0, fmt.Errorf("increment budget spent: %w", err)
	}
	skipped, err := r.queries.CountBudgetsSpentOutside(ctx, userID, category, low, high)
	if err != nil {
		return n, fmt.Errorf("count budgets out of range: %w", err)
	}
	if skipped > 0 {
		return n, core.Errorf(core.ErrInvalidArgument, "Budget spent total out of range")
	}
	return n, nil
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	row, err := r.queries.CreateGoal(ctx, CreateGoalParams{
		ID:          g.ID,
		UserID:      g.UserID,
		Name:        g.Name,
		TargetCents: g.TargetAmount.Cents,
		Deadline:    formatTime(g.Deadline),
		CreatedAt:   formatTime(g.CreatedAt),
	})
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return row.toCore(), nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string, limit int) ([]core.Goal, error) {
	rows, err := r.queries.ListGoals(ctx, userID, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]core.Goal, len(rows))
	for i, row := range rows {
		out[i] = row.toCore()
	}
	return out, nil
}

// ContributeGoal atomically adds amount to the goal's current amount and
// returns the updated goal. Negative amounts are accepted.
func (r *SQLiteRepository) ContributeGoal(ctx context.Context, id, userID string, amount core.Money) (core.Goal, error) {
	low, high := addRange(amount.Cents)
	row, err := r.queries.ContributeGoal(ctx, ContributeGoalParams{
		AmountCents: amount.Cents,
		ID:          id,
		UserID:      userID,
		Low:         low,
		High:        high,
	})
	if errors.Is(err, sql.ErrNoRows) {
		exists, existsErr := r.queries.GoalExists(ctx, id, userID)
		if existsErr != nil {
			return core.Goal{}, fmt.Errorf("contribute goal: %w", existsErr)
		}
		if exists {
			return core.Goal{}, core.Errorf(core.ErrInvalidArgument, "Goal amount out of range")
		}
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("contribute goal: %w", notFound(err, "Goal"))
	}
	return row.toCore(), nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id, userID string) error {
	n, err := r.queries.DeleteGoal(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n == 0 {
		return core.Errorf(core.ErrNotFound, "Goal not found")
	}
	return nil
}
