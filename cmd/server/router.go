package main

import (
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/api"
	apiMiddleware "github.com/flashdeck/flashdeck-api/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// setupRouter configures the application router with middleware, the
// flashcard set routes, and the health endpoint.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// The browser client is served from a different origin.
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)

	setHandler := api.NewSetHandler(app.setStore, app.logger)
	cardHandler := api.NewCardHandler(app.setStore, app.logger)
	quizHandler := api.NewQuizHandler(app.builder, app.logger)

	r.Route("/flashcard_sets", func(r chi.Router) {
		r.Get("/", setHandler.ListSets)
		r.Post("/", setHandler.CreateSet)

		r.Route("/{setID}", func(r chi.Router) {
			r.Get("/", setHandler.GetSet)
			r.Patch("/", setHandler.UpdateSet)
			r.Delete("/", setHandler.DeleteSet)

			r.Post("/cards", cardHandler.CreateCard)
			r.Patch("/cards/{cardID}", cardHandler.UpdateCard)
			r.Delete("/cards/{cardID}", cardHandler.DeleteCard)

			r.Get("/quiz", quizHandler.GetQuiz)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
