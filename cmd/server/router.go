package main

import (
	"net/http"

	"github.com/RakadSK/trabajoprogwebII/internal/web"
	webMiddleware "github.com/RakadSK/trabajoprogwebII/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(webMiddleware.Trace(app.logger))

	// Create handlers using the application's services
	authHandler := web.NewAuthHandler(
		app.userService,
		app.sessions,
		app.csrf,
		app.renderer,
		app.logger,
	)
	taskHandler := web.NewTaskHandler(
		app.taskService,
		app.userService,
		app.sessions,
		app.csrf,
		app.renderer,
		app.logger,
	)
	authMiddleware := webMiddleware.NewAuthMiddleware(app.sessions)

	// Public routes
	r.Get("/", taskHandler.Index)
	r.Get("/task/{slug}/", taskHandler.Show)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/signup/", authHandler.SignupForm)
	r.Post("/signup/", authHandler.Signup)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Get("/logout", authHandler.Logout)
		r.Get("/admin/task/", taskHandler.NewForm)
		r.Post("/admin/task/", taskHandler.Create)
	})

	// Unknown routes get the rendered 404 page
	r.NotFound(taskHandler.NotFound)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
