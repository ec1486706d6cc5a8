package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitech-app/user-service/internal/service"
	"github.com/fitech-app/user-service/pkg/pagination"
	"github.com/fitech-app/user-service/pkg/validator"
)

// UserHandler handles HTTP requests for user account endpoints.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// --- Request DTOs ---

// UpdateUserRequest is the JSON request body for updating a user. Absent
// fields are left unchanged.
type UpdateUserRequest struct {
	Username *string              `json:"username" validate:"omitempty,min=3,max=50"`
	Password *string              `json:"password" validate:"omitempty,min=8"`
	Type     *string              `json:"type" validate:"omitempty,oneof=CUSTOMER TRAINER ADMIN"`
	Person   *UpdatePersonRequest `json:"person"`
}

// UpdatePersonRequest carries the nested person fields of an update.
type UpdatePersonRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	DocumentType   *string `json:"document_type" validate:"omitempty,max=20"`
	DocumentNumber *string `json:"document_number" validate:"omitempty,max=20"`
	PhoneNumber    *string `json:"phone_number" validate:"omitempty,max=20"`
	Email          *string `json:"email" validate:"omitempty,email"`
}

// --- Handlers ---

// GetByID handles GET /api/v1/users/{id}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: user})
}

// Update handles PUT /api/v1/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	input := service.UpdateInput{
		Username: req.Username,
		Password: req.Password,
		Type:     req.Type,
	}
	if req.Person != nil {
		input.Person = &service.UpdatePersonInput{
			FirstName:      req.Person.FirstName,
			LastName:       req.Person.LastName,
			DocumentType:   req.Person.DocumentType,
			DocumentNumber: req.Person.DocumentNumber,
			PhoneNumber:    req.Person.PhoneNumber,
			Email:          req.Person.Email,
		}
	}

	user, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: user})
}

// List handles GET /api/v1/users?page=1&size=20
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: page})
}

// UsernameExists handles GET /api/v1/users/username-exists?username=...
func (h *UserHandler) UsernameExists(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeBadRequest(w, "username query parameter is required")
		return
	}

	exists, err := h.service.UsernameExists(r.Context(), username)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]bool{"exists": exists}})
}

// EmailExists handles GET /api/v1/users/email-exists?email=...
func (h *UserHandler) EmailExists(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeBadRequest(w, "email query parameter is required")
		return
	}

	exists, err := h.service.EmailExists(r.Context(), email)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]bool{"exists": exists}})
}
