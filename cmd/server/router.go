package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/platform/metrics"
)

// setupRouter creates the application router with its middleware stack and
// every route registered.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(app.metrics.Middleware)
	r.Use(apiMiddleware.CORS(app.config.Server.AllowedOrigins))

	// A nil *Hub must not become a non-nil http.Handler.
	var stream http.Handler
	if app.hub != nil {
		stream = app.hub
	}
	taskHandler := api.NewTaskHandler(app.handlers, stream, app.logger)

	r.Route("/api", taskHandler.RegisterRoutes)
	r.Get("/health", api.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	return r
}
