package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/taskwall/taskwall/internal/api"
	apimiddleware "github.com/taskwall/taskwall/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. It accepts the application dependencies to
// create handlers and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create API handlers using the application's stores
	todoHandler := api.NewTodoHandler(app.todoStore, app.logger)
	userHandler := api.NewUserHandler(app.userStore, app.logger)
	columnHandler := api.NewColumnHandler(app.columnStore, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)

	// The in-memory backend has no connection to ping, so the health
	// check runs without one.
	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}
	healthHandler := api.NewHealthHandler(pinger, app.logger)

	r.Get("/", api.Root)
	r.Get("/health", healthHandler.Check)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/todos", func(r chi.Router) {
			r.Post("/", todoHandler.Create)
			r.Get("/", todoHandler.List)
			r.Get("/{id}", todoHandler.Get)
			r.Put("/{id}", todoHandler.Update)
			r.Delete("/{id}", todoHandler.Delete)
			r.Patch("/{id}/complete", todoHandler.Complete)
			r.Patch("/{id}/incomplete", todoHandler.Incomplete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Create)
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})

		r.Route("/columns", func(r chi.Router) {
			r.Post("/", columnHandler.Create)
			r.Get("/", columnHandler.List)
			r.Get("/{id}", columnHandler.Get)
			r.Put("/{id}", columnHandler.Update)
			r.Delete("/{id}", columnHandler.Delete)
			r.Patch("/{id}/reorder", columnHandler.Reorder)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)
			r.Get("/columns/{columnID}/tasks", taskHandler.ListByColumn)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
			r.Patch("/{id}/reorder", taskHandler.Reorder)
			r.Patch("/{id}/move", taskHandler.Move)
		})
	})

	return r
}
