// Package api provides HTTP handlers for the Vigilant webhook server.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vigilant-ai/vigilant/internal/reconcile"
	"github.com/vigilant-ai/vigilant/internal/store"
)

// Handler serves the inbound reply webhook and the conversation read model.
type Handler struct {
	repo store.Repository
	rec  *reconcile.Reconciler
}

// NewHandler creates a new Handler.
func NewHandler(repo store.Repository, rec *reconcile.Reconciler) *Handler {
	return &Handler{repo: repo, rec: rec}
}

// RegisterRoutes registers all webhook server routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sms-reply", h.SMSReply)
	r.Route("/api", func(r chi.Router) {
		r.Get("/conversations", h.Conversations)
		r.Get("/pending", h.Pending)
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
