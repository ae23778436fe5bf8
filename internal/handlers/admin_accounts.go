package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
	"github.com/horizonbank/horizon/internal/services"
)

// AccountCreator defines the interface that the admin service must implement.
type AccountCreator interface {
	CreateAccount(ctx context.Context, userID int64, accountType string, initialBalance decimal.Decimal) (*models.AccountDB, error)
}

// CreateAccountRequest represents the JSON body for opening an account
// swagger:model CreateAccountRequest
type CreateAccountRequest struct {
	// Owning customer id
	// required: true
	// default: 2
	UserID int64 `json:"user_id"`

	// Account type: checking, savings or credit
	// required: true
	// default: checking
	Type string `json:"type"`

	// Initial balance, "NNNN.NN"
	// default: 0.00
	InitialBalance string `json:"initial_balance"`
}

// CreateAccountResponse represents a successfully opened account
// swagger:model CreateAccountResponse
type CreateAccountResponse struct {
	// Success message
	// default: Account created successfully
	Message string `json:"message"`

	// The new account
	Account AccountView `json:"account"`
}

// NewAdminCreateAccountHandler returns an HTTP handler for opening accounts.
// @Summary Create account
// @Description Opens a new account of the given type for a customer with an initial balance
// @Tags admin
// @Accept json
// @Produce json
// @Param request body handlers.CreateAccountRequest true "Create Account Request"
// @Success 201 {object} handlers.CreateAccountResponse "Account created"
// @Failure 400 {object} handlers.AdminErrorResponse "Invalid account type or balance"
// @Failure 401 {object} handlers.AdminErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.AdminErrorResponse "Forbidden"
// @Router /admin/accounts [post]
// @Security BearerAuth
func NewAdminCreateAccountHandler(svc AccountCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid request body"})
			return
		}

		balance := decimal.Zero
		if req.InitialBalance != "" {
			var err error
			balance, err = decimal.NewFromString(req.InitialBalance)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid initial balance"})
				return
			}
		}

		account, err := svc.CreateAccount(r.Context(), req.UserID, req.Type, balance)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownAccountType), errors.Is(err, services.ErrInvalidAmount):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid account type or balance"})
			default:
				logger.Log.Errorw("failed to create account", "userID", req.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateAccountResponse{
			Message: "Account created successfully",
			Account: accountView(*account),
		})
	}
}
