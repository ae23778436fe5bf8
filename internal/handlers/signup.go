package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, email string) error
}

// SignupRequest represents the JSON body for customer signup
// swagger:model SignupRequest
type SignupRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// SignupResponse represents a successful signup response
// swagger:model SignupResponse
type SignupResponse struct {
	// Success message
	// default: User registered successfully
	Message string `json:"message"`
}

// SignupErrorResponse represents an error response for signup
// swagger:model SignupErrorResponse
type SignupErrorResponse struct {
	// Error message
	// default: Username or email already exists
	Error string `json:"error"`
}

// NewSignupHandler returns an HTTP handler for customer signup.
// @Summary Register a new customer
// @Description Creates a new customer account. Ensures unique username and email. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body handlers.SignupRequest true "Signup request"
// @Success 201 {object} handlers.SignupResponse "User successfully registered"
// @Failure 400 {object} handlers.SignupErrorResponse "Username or email already exists / invalid request"
// @Router /auth/signup [post]
func NewSignupHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SignupErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		if req.Username == "" || req.Password == "" || req.Email == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SignupErrorResponse{
				Error: "Username, password and email are required",
			})
			return
		}

		err := svc.Register(r.Context(), req.Username, req.Password, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: "Username or email already exists",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SignupResponse{
			Message: "User registered successfully",
		})
	}
}
