// Package server exposes the study service as a JSON HTTP API.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/at-ishikawa/estudazilla/internal/config"
	"github.com/at-ishikawa/estudazilla/internal/export"
	"github.com/at-ishikawa/estudazilla/internal/study"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Service  *study.Service
	Exporter *export.Exporter
	Config   config.ServerConfig
	// UploadDir is where uploaded PDFs are kept.
	UploadDir string
	Logger    *slog.Logger
}

// NewRouter creates the HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	uploadMax := deps.Config.UploadMaxMB
	if uploadMax <= 0 {
		uploadMax = 64
	}
	h := &Handler{
		service:        deps.Service,
		exporter:       deps.Exporter,
		uploadDir:      deps.UploadDir,
		uploadMaxBytes: uploadMax << 20,
		logger:         logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.Config.CORS.AllowedOrigins))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", h.ListDocuments)
			r.Post("/", h.UploadDocument)
			r.Get("/{id}", h.GetDocument)
			r.Delete("/{id}", h.DeleteDocument)
			r.Get("/{id}/export", h.ExportDocument)
			r.Post("/{id}/quiz", h.DocumentQuiz)
		})
		r.Route("/content/{id}", func(r chi.Router) {
			r.Get("/summary", h.ContentSummary)
			r.Post("/flashcards", h.CreateFlashcard)
			r.Post("/quiz", h.ContentQuiz)
			r.Put("/important", h.MarkImportant)
		})
		r.Get("/flashcards", h.ListFlashcards)
		r.Post("/flashcards/{id}/review", h.ReviewFlashcard)
		r.Get("/questions", h.ListQuestions)
		r.Get("/stats", h.Stats)
	})

	return r
}

// NewHTTPServer creates the server listening on the configured port.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
