package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitech-app/user-service/internal/auth"
	"github.com/fitech-app/user-service/internal/config"
	handler "github.com/fitech-app/user-service/internal/handler/http"
	"github.com/fitech-app/user-service/internal/mailer"
	"github.com/fitech-app/user-service/internal/repository/postgres"
	"github.com/fitech-app/user-service/internal/service"
	"github.com/fitech-app/user-service/migrations"
	"github.com/fitech-app/user-service/pkg/database"
	"github.com/fitech-app/user-service/pkg/health"
)

// App wires together all dependencies and runs the user service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Outbound email. Without an SMTP host the service still runs; the
	// verification links are written to the log instead.
	var verificationMailer mailer.Mailer
	if cfg.SMTPHost != "" {
		smtpMailer, err := mailer.NewSMTPMailer(cfg.SMTP(), cfg.BaseURL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init smtp mailer: %w", err)
		}
		verificationMailer = smtpMailer
		logger.Info("smtp mailer initialized",
			slog.String("host", cfg.SMTPHost),
			slog.Int("port", cfg.SMTPPort),
		)
	} else {
		verificationMailer = mailer.NewLogMailer(logger)
		logger.Warn("SMTP_HOST not set, verification emails will be logged only")
	}

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	userRepo := postgres.NewUserRepository(pool)
	personRepo := postgres.NewPersonRepository(pool)
	unitRepo := postgres.NewUnitOfMeasureRepository(pool)
	userService := service.NewUserService(userRepo, jwtManager, verificationMailer, logger)
	personService := service.NewPersonService(personRepo, logger)
	unitService := service.NewUnitOfMeasureService(unitRepo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(userService, personService, unitService, jwtManager, healthHandler, logger, handler.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: first the HTTP
// server drains in-flight requests, then the PostgreSQL pool closes.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		a.pool.Close()
		return err
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
