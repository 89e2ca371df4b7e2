// Package handler exposes the user service over HTTP/JSON.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"user-registry/internal/audit"
	auditdomain "user-registry/internal/audit/domain"
	"user-registry/internal/user/domain"
	"user-registry/internal/user/repository"
	"user-registry/internal/user/service"
)

// UserService is the surface of the user service consumed by HTTP handlers.
type UserService interface {
	Create(ctx context.Context, payload map[string]any) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, rawID string) (*domain.User, error)
	GetByQuery(ctx context.Context, f repository.Filter) (*domain.User, error)
}

// Handler serves the /users routes.
type Handler struct {
	svc     UserService
	auditor *audit.Logger
}

// NewHandler returns a Handler backed by svc. auditor may be nil; then no
// audit trail is written.
func NewHandler(svc UserService, auditor *audit.Logger) *Handler {
	return &Handler{svc: svc, auditor: auditor}
}

// Routes registers the user routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/users", h.List)
	r.Get("/users/search", h.GetByQuery)
	r.Get("/users/{id}", h.GetByID)
	r.Post("/users", h.Create)
}

// Create handles POST /users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed", Message: "request body must be a JSON object"})
		return
	}

	u, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.auditor.LogEvent(r.Context(), auditdomain.ActionUserCreated, u.Login, fmt.Sprintf(`{"id":%d}`, u.ID))
	respondJSON(w, http.StatusCreated, u)
}

// List handles GET /users. Zero users is a no-content condition, not an error.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	if len(users) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetByID handles GET /users/{id}.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// GetByQuery handles GET /users/search with optional name/login/email filters.
func (h *Handler) GetByQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	u, err := h.svc.GetByQuery(r.Context(), repository.Filter{
		Name:  q.Get("name"),
		Login: q.Get("login"),
		Email: q.Get("email"),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

type errorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// respondError maps the service error taxonomy to response classes. Anything
// outside the taxonomy is an unexpected store failure: logged here with
// detail, surfaced to the caller as a generic 500.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var malformed *service.MalformedError
	var validation *service.ValidationError
	switch {
	case errors.As(err, &malformed):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed", Message: malformed.Reason})
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "validation_failed", Fields: validation.Fields})
	case errors.Is(err, service.ErrConflict):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "duplicate", Message: service.ErrConflict.Error()})
	case errors.Is(err, service.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Message: service.ErrNotFound.Error()})
	default:
		log.Printf("users: internal error: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal", Message: "internal server error"})
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("users: encode response: %v", err)
	}
}
