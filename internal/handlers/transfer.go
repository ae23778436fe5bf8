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

// Transferrer defines the interface that the service must implement.
type Transferrer interface {
	Transfer(ctx context.Context, userID, fromID, toID int64, amount decimal.Decimal) (*models.AccountDB, error)
}

// TransferRequest represents the JSON body for a transfer
// swagger:model TransferRequest
type TransferRequest struct {
	// Source account id, must belong to the caller
	// required: true
	// default: 1
	FromAccountID int64 `json:"from_account_id"`

	// Destination account id
	// required: true
	// default: 2
	ToAccountID int64 `json:"to_account_id"`

	// Amount, "NNNN.NN"
	// required: true
	// default: 100.00
	Amount string `json:"amount"`
}

// TransferResponse represents a successful transfer
// swagger:model TransferResponse
type TransferResponse struct {
	// Success message
	// default: Transfer completed successfully
	Message string `json:"message"`

	// Source account after the transfer
	FromAccount AccountView `json:"from_account"`
}

// TransferErrorResponse represents an error response for a transfer
// swagger:model TransferErrorResponse
type TransferErrorResponse struct {
	// Error message
	// default: Insufficient funds
	Error string `json:"error"`
}

// NewTransferHandler returns an HTTP handler for transfers between accounts.
// @Summary Transfer funds
// @Description Moves funds from one of the customer's accounts to another account. The source balance may not go negative.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body handlers.TransferRequest true "Transfer Request"
// @Success 200 {object} handlers.TransferResponse "Transfer completed"
// @Failure 400 {object} handlers.TransferErrorResponse "Invalid amount / insufficient funds"
// @Failure 401 {object} handlers.TransferErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.TransferErrorResponse "Source account owned by another customer"
// @Failure 404 {object} handlers.TransferErrorResponse "Account not found"
// @Router /transfer [post]
// @Security BearerAuth
func NewTransferHandler(svc Transferrer, tokenGetter Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := claimsFromRequest(ctx, w, r, tokenGetter)
		if !ok {
			return
		}

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Invalid request body"})
			return
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Invalid amount"})
			return
		}

		from, err := svc.Transfer(ctx, claims.UserID, req.FromAccountID, req.ToAccountID, amount)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrSameAccount):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Invalid transfer request"})
			case errors.Is(err, services.ErrInsufficientFunds):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Insufficient funds"})
			case errors.Is(err, services.ErrAccountNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Account not found"})
			case errors.Is(err, services.ErrNotAccountOwner):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Source account owned by another customer"})
			default:
				logger.Log.Errorw("failed to transfer", "userID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TransferResponse{
			Message:     "Transfer completed successfully",
			FromAccount: accountView(*from),
		})
	}
}
