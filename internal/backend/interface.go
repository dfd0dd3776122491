package backend

import (
	"context"
	"time"

	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult holds everything the HTTP layer needs from the outside
// world. Advisor is nil when no model API key is configured.
type BackendResult struct {
	Store     *storage.SQLiteRepository
	Publisher services.EventPublisher
	Advisor   services.AdviceGenerator
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	SQLiteDBPath string

	// AMQP is optional; an empty URL disables publishing
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Advice model; an empty key disables it
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	AdviceTimeout time.Duration
}
