package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitech-app/user-service/internal/service"
	"github.com/fitech-app/user-service/pkg/pagination"
	"github.com/fitech-app/user-service/pkg/validator"
)

// UnitOfMeasureHandler handles HTTP requests for units of measure.
type UnitOfMeasureHandler struct {
	service *service.UnitOfMeasureService
}

// NewUnitOfMeasureHandler creates a new unit of measure HTTP handler.
func NewUnitOfMeasureHandler(svc *service.UnitOfMeasureService) *UnitOfMeasureHandler {
	return &UnitOfMeasureHandler{service: svc}
}

// UnitOfMeasureRequest is the JSON request body for creating or updating a unit.
type UnitOfMeasureRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=50"`
	Symbol string `json:"symbol" validate:"required,min=1,max=10"`
}

// UpdateUnitOfMeasureRequest allows partial updates; empty fields keep their
// stored value.
type UpdateUnitOfMeasureRequest struct {
	Name   string `json:"name" validate:"omitempty,min=1,max=50"`
	Symbol string `json:"symbol" validate:"omitempty,min=1,max=10"`
}

// Create handles POST /api/v1/units-of-measure
func (h *UnitOfMeasureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UnitOfMeasureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	unit, err := h.service.Create(r.Context(), service.UnitOfMeasureInput{
		Name:   req.Name,
		Symbol: req.Symbol,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: unit})
}

// Update handles PUT /api/v1/units-of-measure/{id}
func (h *UnitOfMeasureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUnitOfMeasureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	unit, err := h.service.Update(r.Context(), id, service.UnitOfMeasureInput{
		Name:   req.Name,
		Symbol: req.Symbol,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: unit})
}

// Delete handles DELETE /api/v1/units-of-measure/{id}
func (h *UnitOfMeasureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// GetByID handles GET /api/v1/units-of-measure/{id}
func (h *UnitOfMeasureHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	unit, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: unit})
}

// List handles GET /api/v1/units-of-measure?page=1&size=20
func (h *UnitOfMeasureHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: page})
}
