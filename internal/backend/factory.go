package backend

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/advisor"
	"fintrack/internal/amqp"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		lc := log.DefaultConfig()
		lc.Component = log.ComponentBackend
		logger = log.New(lc)
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend opens the store and wires the optional publisher and
// advisor. Only a store failure is fatal: a broker that cannot be reached
// degrades to a no-op publisher.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	result := &BackendResult{
		Store:     repo,
		Publisher: amqp.NopPublisher{},
	}

	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			result.Publisher = amqpClient
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	if config.OpenAIAPIKey != "" {
		cfg := advisor.DefaultConfig(config.OpenAIAPIKey)
		cfg.BaseURL = config.OpenAIBaseURL
		if config.OpenAIModel != "" {
			cfg.Model = config.OpenAIModel
		}
		if config.AdviceTimeout > 0 {
			cfg.Timeout = config.AdviceTimeout
		}
		client, err := advisor.New(cfg)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize advisor, advice disabled", "error", err)
		} else {
			// assign only a non-nil client so the interface stays nil otherwise
			result.Advisor = client
		}
	}

	result.Cleanup = func() error {
		var errs []error
		if amqpClient != nil {
			errs = append(errs, amqpClient.Close())
		}
		errs = append(errs, repo.Close())
		return errors.Join(errs...)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil,
		"advice_enabled", result.Advisor != nil)

	return result, nil
}

// NewServices wires the ledger services on top of a backend.
func NewServices(b *BackendResult, hasher services.PasswordHasher, tokens services.TokenIssuer) Services {
	return Services{
		Auth:         services.NewAuthService(b.Store, hasher, tokens),
		Transactions: services.NewTransactionService(b.Store, b.Publisher),
		Budgets:      services.NewBudgetService(b.Store, b.Publisher),
		Goals:        services.NewGoalService(b.Store, b.Publisher),
		Stats:        services.NewStatsService(b.Store),
		Advice:       services.NewAdviceService(b.Store, b.Advisor),
	}
}

type Services struct {
	Auth         *services.AuthService
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Goals        *services.GoalService
	Stats        *services.StatsService
	Advice       *services.AdviceService
}
