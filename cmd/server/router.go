package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/pairforge/pairforge/internal/api/middleware"
	"github.com/pairforge/pairforge/internal/api/shared"
)

// setupRouter creates the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", app.handler.Generate)
		r.Post("/generate/jsonl", app.handler.GenerateJSONL)
		r.Get("/providers", app.handler.ListProviders)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
