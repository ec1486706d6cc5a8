package http

import (
	"encoding/json"
	"net/http"

	"github.com/fitech-app/user-service/internal/service"
	"github.com/fitech-app/user-service/pkg/validator"
)

// AuthHandler handles HTTP requests for the registration and login endpoints.
type AuthHandler struct {
	service *service.UserService
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.UserService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// --- Request DTOs ---

// RegisterRequest is the JSON request body for user registration.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Password       string `json:"password" validate:"required,min=8"`
	Type           string `json:"type" validate:"omitempty,oneof=CUSTOMER TRAINER ADMIN"`
	FirstName      string `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string `json:"last_name" validate:"required,min=1,max=100"`
	DocumentType   string `json:"document_type" validate:"omitempty,max=20"`
	DocumentNumber string `json:"document_number" validate:"omitempty,max=20"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=20"`
	Email          string `json:"email" validate:"required,email"`
}

// LoginRequest is the JSON request body for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse wraps the issued token with the authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// --- Handlers ---

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	input := service.RegisterInput{
		Username:       req.Username,
		Password:       req.Password,
		Type:           req.Type,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
	}

	user, err := h.service.Register(r.Context(), input)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: user})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Data: LoginResponse{Token: result.Token, User: result.User},
	})
}

// VerifyEmail handles GET /api/v1/auth/verify-email?token=...
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	user, err := h.service.VerifyEmail(r.Context(), token)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: user})
}
