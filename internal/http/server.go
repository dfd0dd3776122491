// Package http exposes the ledger services as a JSON API under /api.
package http

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/metrics"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (services.Session, error)
	Login(ctx context.Context, email, password string) (services.Session, error)
}

type TransactionService interface {
	Create(ctx context.Context, userID string, t core.Transaction) (core.Transaction, error)
	List(ctx context.Context, userID string) ([]core.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}

type BudgetService interface {
	Create(ctx context.Context, userID string, b core.Budget) (core.Budget, error)
	List(ctx context.Context, userID string) ([]core.Budget, error)
	Update(ctx context.Context, userID, id string, b core.Budget) (core.Budget, error)
	Delete(ctx context.Context, userID, id string) error
}

type GoalService interface {
	Create(ctx context.Context, userID string, g core.Goal) (core.Goal, error)
	List(ctx context.Context, userID string) ([]core.Goal, error)
	Contribute(ctx context.Context, userID, id string, amount core.Money) (core.Goal, error)
	Delete(ctx context.Context, userID, id string) error
}

type StatsService interface {
	Stats(ctx context.Context, userID string) (core.Stats, error)
}

type AdviceService interface {
	Advice(ctx context.Context, userID, userContext string) string
}

// TokenVerifier resolves a bearer token to the owning user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Pinger backs the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the handlers' collaborators.
type Services struct {
	Auth         AuthService
	Transactions TransactionService
	Budgets      BudgetService
	Goals        GoalService
	Stats        StatsService
	Advice       AdviceService
	Tokens       TokenVerifier
	Store        Pinger
}

type Config struct {
	Addr           string
	AllowedOrigins []string
	// AuthRateLimit is the number of register/login calls allowed per client
	// IP per minute. Zero disables the limit.
	AuthRateLimit int
	// Logger is attached to every request context.
	Logger *log.Logger
}

type Server struct {
	http.Server
	svc          Services
	started      time.Time
	shutdownOnce sync.Once
}

// corsOptions allows credentialed requests from origins. An empty list or
// "*" admits every origin by echoing it back, since browsers refuse a
// literal "*" when credentials are allowed.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
		return opts
	}
	opts.AllowedOrigins = origins
	return opts
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg Config, svc Services) *Server {
	logger := cfg.Logger
	if logger == nil {
		lc := log.DefaultConfig()
		lc.Component = log.ComponentHTTP
		logger = log.New(lc)
	}

	s := &Server{
		svc:     svc,
		started: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(log.Middleware(logger))
	r.Use(log.RequestIDMiddleware)
	r.Use(trace.NewMiddleware(extractClientIP).Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(cfg.AllowedOrigins)))
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleRoot)

		r.Group(func(r chi.Router) {
			if cfg.AuthRateLimit > 0 {
				r.Use(httprate.Limit(cfg.AuthRateLimit, time.Minute,
					httprate.WithKeyFuncs(rateLimitKey),
					httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
						writeDetail(w, http.StatusTooManyRequests, "Too many requests")
					}),
				))
			}
			r.Post("/auth/register", s.handleRegister)
			r.Post("/auth/login", s.handleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Post("/transactions", s.handleCreateTransaction)
			r.Get("/transactions", s.handleListTransactions)
			r.Delete("/transactions/{id}", s.handleDeleteTransaction)

			r.Post("/budgets", s.handleCreateBudget)
			r.Get("/budgets", s.handleListBudgets)
			r.Put("/budgets/{id}", s.handleUpdateBudget)
			r.Delete("/budgets/{id}", s.handleDeleteBudget)

			r.Post("/goals", s.handleCreateGoal)
			r.Get("/goals", s.handleListGoals)
			r.Put("/goals/{id}/contribute", s.handleContributeGoal)
			r.Delete("/goals/{id}", s.handleDeleteGoal)

			r.Get("/stats", s.handleStats)
			r.Post("/advice", s.handleAdvice)
		})
	})

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// advice calls wait on the model
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server. It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
