// Package http provides HTTP handlers and routing for the gatekeeper service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avaolo/gatekeeper/internal/middleware"
	"github.com/avaolo/gatekeeper/internal/models"
	"github.com/avaolo/gatekeeper/internal/repository"
	"github.com/avaolo/gatekeeper/internal/service"
)

// FieldService defines the interface for field operations
// required by the HTTP handlers.
type FieldService interface {
	// ListFields returns all fields owned by the given farmer.
	ListFields(ctx context.Context, farmer string) ([]models.Field, error)
	// GetField returns the farmer's field with the given id.
	GetField(ctx context.Context, farmer, id string) (models.Field, error)
	// CreateField validates and persists a new field for the farmer.
	CreateField(ctx context.Context, farmer, name string, areaHa float64, crop string) (models.Field, error)
}

// FieldHandler handles HTTP requests for the fields API. A nil
// FieldService means no database is configured; every request then
// reports the store unavailable.
type FieldHandler struct {
	// FieldService performs the underlying field operations.
	FieldService FieldService
}

// CreateFieldRequest represents the JSON payload for field creation.
type CreateFieldRequest struct {
	// Name is the human-readable field name.
	Name string `json:"name"`
	// AreaHa is the field area in hectares.
	AreaHa float64 `json:"area_ha"`
	// Crop is the crop currently planted, optional.
	Crop string `json:"crop"`
}

// List returns all fields owned by the authenticated farmer.
func (h *FieldHandler) List(w http.ResponseWriter, r *http.Request) {
	farmer, ok := h.farmer(w, r)
	if !ok {
		return
	}

	fields, err := h.FieldService.ListFields(r.Context(), farmer)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

// Get returns the authenticated farmer's field identified by the id
// URL parameter.
func (h *FieldHandler) Get(w http.ResponseWriter, r *http.Request) {
	farmer, ok := h.farmer(w, r)
	if !ok {
		return
	}

	field, err := h.FieldService.GetField(r.Context(), farmer, chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "field not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, field)
}

// Create registers a new field for the authenticated farmer.
// It expects a JSON body with a non-empty "name" and a positive "area_ha".
func (h *FieldHandler) Create(w http.ResponseWriter, r *http.Request) {
	farmer, ok := h.farmer(w, r)
	if !ok {
		return
	}

	var req CreateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	field, err := h.FieldService.CreateField(r.Context(), farmer, req.Name, req.AreaHa, req.Crop)
	if errors.Is(err, service.ErrInvalidField) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, field)
}

// farmer resolves the authenticated caller and checks store availability,
// writing the error response itself when either is missing.
func (h *FieldHandler) farmer(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.FieldService == nil {
		http.Error(w, "field storage unavailable", http.StatusServiceUnavailable)
		return "", false
	}
	farmer := middleware.GetUserFromContext(r.Context())
	if farmer == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return "", false
	}
	return farmer, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
