package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/scriptorium/scriptorium/internal/model"
)

// GetStatus serves the pipeline snapshot the dashboard polls.
func GetStatus(p *Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, p.Snapshot())
	}
}

// SubmitManuscript accepts a new manuscript for processing.
func SubmitManuscript(p *Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub model.Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeError(w, http.StatusBadRequest, "invalid submission body")
			return
		}
		if strings.TrimSpace(sub.Content) == "" {
			writeError(w, http.StatusBadRequest, "conteudo is required")
			return
		}
		if strings.TrimSpace(sub.Metadata.Title) == "" {
			writeError(w, http.StatusBadRequest, "metadata.title is required")
			return
		}

		writeJSON(w, http.StatusOK, p.Submit(sub))
	}
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
