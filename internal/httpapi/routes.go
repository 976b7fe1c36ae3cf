package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes builds the stub backend router around a pipeline.
func SetupRoutes(p *Pipeline, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	r.Get("/status", GetStatus(p))
	r.Post("/processar_manuscrito", SubmitManuscript(p))
	r.Get("/healthz", Healthz)
	return r
}
