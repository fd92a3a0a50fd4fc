package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"paydesk/internal/domain/audit"
	"paydesk/internal/domain/auth"
	"paydesk/internal/domain/employees"
	"paydesk/internal/domain/payroll"
	"paydesk/internal/domain/reports"
	"paydesk/internal/platform/config"
	"paydesk/internal/platform/db"
	"paydesk/internal/platform/email"
	"paydesk/internal/platform/jobs"
	"paydesk/internal/platform/metrics"
	audithandler "paydesk/internal/transport/http/handlers/audit"
	authhandler "paydesk/internal/transport/http/handlers/auth"
	employeeshandler "paydesk/internal/transport/http/handlers/employees"
	payrollhandler "paydesk/internal/transport/http/handlers/payroll"
	reportshandler "paydesk/internal/transport/http/handlers/reports"
	"paydesk/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *db.Pool
	Router  http.Handler
	Jobs    *jobs.Service
	Metrics *metrics.Collector

	cancel context.CancelFunc
}

func init() {
	// Money travels as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// New connects to the database, prepares the schema and builds the router.
// Background jobs run until Close is called.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, db.Migrations()); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	policy, err := auth.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		pool.Close()
		return nil, err
	}
	authorizer, err := auth.NewAuthorizer(policy)
	if err != nil {
		pool.Close()
		return nil, err
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	authStore := auth.NewStore(pool)
	authService := auth.NewService(authStore, cfg.JWTSecret, cfg.JWTTTL)
	employeeService := employees.NewService(employees.NewStore(pool))
	payrollService := payroll.NewService(payroll.NewStore(pool))
	auditService := audit.New(pool)
	reportsService := reports.NewService(reports.NewStore(pool))

	jobCtx, cancel := context.WithCancel(context.Background())
	jobService := jobs.New(jobs.NewPgRecorder(pool))
	if cfg.ShutdownTimeout > 0 {
		jobService.DrainTimeout = cfg.ShutdownTimeout
	}
	jobService.Start(jobCtx)
	jobService.Schedule(jobCtx, jobs.JobPurgeRevokedTokens, cfg.TokenPurgeInterval, func(ctx context.Context) (any, error) {
		purged, err := authStore.PurgeRevoked(ctx, time.Now())
		return map[string]int64{"purged": purged}, err
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(authService))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(collector.Snapshot())
		})
	}

	employeeHandler := employeeshandler.NewHandler(employeeService, authorizer, collector)
	employeeHandler.Audit = auditService

	payrollHandler := payrollhandler.NewHandler(payrollService, authorizer)
	payrollHandler.Idempotency = middleware.NewIdempotencyStore(pool)
	payrollHandler.Metrics = collector
	payrollHandler.Audit = auditService
	payrollHandler.Jobs = jobService
	payrollHandler.MailFrom = cfg.EmailFrom
	if cfg.EmailEnabled {
		payrollHandler.Mailer = email.New(cfg)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authhandler.NewHandler(authService, cfg.AllowSelfSignup).RegisterRoutes)

		r.Route("/employees", func(r chi.Router) {
			r.Use(middleware.RequireSession)
			employeeHandler.RegisterRoutes(r)
			payrollHandler.RegisterRoutes(r)
		})

		audithandler.NewHandler(auditService, authorizer).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService, authorizer).RegisterRoutes(r)
	})

	return &App{
		Config:  cfg,
		DB:      pool,
		Router:  router,
		Jobs:    jobService,
		Metrics: collector,
		cancel:  cancel,
	}, nil
}

// Close stops background jobs, runs what is still queued within the shutdown
// timeout and releases the pool.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.Jobs != nil {
		a.Jobs.Wait()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func newHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM.
func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := newHTTPServer(cfg, app.Router)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("paydesk listening", "addr", cfg.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "err", err)
		}
	}
}
