package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"buget/internal/core"
	"buget/internal/ledger"
	"buget/internal/log"
)

// LedgerService is what the handlers need from the ledger.
type LedgerService interface {
	AddTransaction(ctx context.Context, d core.Draft) (core.Transaction, error)
	RegisterCategory(ctx context.Context, name string) (string, error)
	AddBudget(ctx context.Context, name string) error
	Budgets() []string
	Categories() []string
	Balances() []core.BudgetBalance
	List(r ledger.Range, f ledger.Filter) []core.Transaction
	Dashboard(today core.Date) ledger.Dashboard
	Report(r ledger.Range, today core.Date) ledger.Report
	BackupStatus(today core.Date) ledger.BackupAge
	LastBackup() core.Date
	Export(ctx context.Context, today core.Date) ([]byte, error)
	Import(ctx context.Context, raw []byte) (ledger.State, error)
}

type Server struct {
	http.Server
	svc          LedgerService
	logger       *log.Logger
	today        func() core.Date
	limiter      *rateLimiter
	headers      SecurityHeaders
	shutdownOnce sync.Once
}

type Option func(*Server)

// WithClock replaces the source of "today", used by tests.
func WithClock(today func() core.Date) Option {
	return func(s *Server) { s.today = today }
}

// WithWriteRateLimit sets how many writes per minute a client may make.
func WithWriteRateLimit(perMinute int) Option {
	return func(s *Server) {
		if s.limiter != nil {
			s.limiter.stop()
		}
		s.limiter = newRateLimiter(perMinute)
	}
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc LedgerService, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &Server{
		svc:     svc,
		logger:  logger.WithComponent(log.ComponentHTTP),
		today:   core.Today,
		headers: DefaultSecurityHeaders(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = newRateLimiter(60)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleHealth)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/balances", s.handleBalances)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/report", s.handleReport)
	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("GET /api/backup", s.handleExport)
	mux.HandleFunc("POST /api/backup", s.handleImport)
	mux.HandleFunc("GET /api/backup/status", s.handleBackupStatus)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           log.Middleware(s.logger)(s.headers.middleware(s.guard(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// guard rejects probing requests and rate limits writes per client.
func (s *Server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSuspiciousPath(r.URL.Path) {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request rejected",
				log.FieldPath, r.URL.Path, log.FieldClientIP, log.ClientIP(r))
			ErrorResponse(http.StatusNotFound, "not_found", "not found").Write(w)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !s.limiter.allow(log.ClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			ErrorResponse(http.StatusTooManyRequests, "rate_limited", "too many requests, try again later").Write(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the rate limiter and gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	NewResponse().JSON(map[string]string{"status": "ok"}).Write(w)
}
