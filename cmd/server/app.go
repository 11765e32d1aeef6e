package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/RakadSK/trabajoprogwebII/internal/config"
	"github.com/RakadSK/trabajoprogwebII/internal/platform/postgres"
	"github.com/RakadSK/trabajoprogwebII/internal/service"
	"github.com/RakadSK/trabajoprogwebII/internal/service/auth"
	"github.com/RakadSK/trabajoprogwebII/internal/store"
	"github.com/RakadSK/trabajoprogwebII/internal/web"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	sessions    auth.SessionManager
	csrf        *auth.CSRFProtector
	userService service.UserService
	taskService service.TaskService

	// Rendering
	renderer *web.Renderer
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize session manager
	var err error
	app.sessions, err = auth.NewSessionManager(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}
	logger.Info("Session manager initialized",
		"session_lifetime_minutes", cfg.Auth.SessionLifetimeMinutes)

	// Initialize CSRF protection
	app.csrf, err = auth.NewCSRFProtector(cfg.Auth.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize CSRF protection: %w", err)
	}

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Initialize services
	app.userService = service.NewUserService(
		app.userStore,
		auth.NewBcryptHasher(0),
		auth.NewBcryptVerifier(),
		logger,
	)
	app.taskService = service.NewTaskService(app.taskStore, logger)

	// Initialize the HTML renderer
	app.renderer, err = web.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
