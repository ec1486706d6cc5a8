package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitech-app/user-service/internal/service"
	"github.com/fitech-app/user-service/pkg/pagination"
	"github.com/fitech-app/user-service/pkg/validator"
)

// PersonHandler handles HTTP requests for standalone person records.
type PersonHandler struct {
	service *service.PersonService
}

// NewPersonHandler creates a new person HTTP handler.
func NewPersonHandler(svc *service.PersonService) *PersonHandler {
	return &PersonHandler{service: svc}
}

// CreatePersonRequest is the JSON request body for creating a person.
type CreatePersonRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string `json:"last_name" validate:"required,min=1,max=100"`
	DocumentType   string `json:"document_type" validate:"omitempty,max=20"`
	DocumentNumber string `json:"document_number" validate:"omitempty,max=20"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=20"`
	Email          string `json:"email" validate:"omitempty,email"`
}

// Create handles POST /api/v1/persons
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	person, err := h.service.Create(r.Context(), service.CreatePersonInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: person})
}

// Update handles PUT /api/v1/persons/{id}
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	person, err := h.service.Update(r.Context(), id, service.UpdatePersonInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: person})
}

// GetByID handles GET /api/v1/persons/{id}
func (h *PersonHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	person, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: person})
}

// List handles GET /api/v1/persons?page=1&size=20
func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: page})
}
