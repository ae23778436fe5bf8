package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
	"github.com/horizonbank/horizon/internal/services"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	Transactions(ctx context.Context, userID, accountID int64) ([]models.TransactionDB, error)
}

// TransactionsResponse represents an account's transaction history
// swagger:model TransactionsResponse
type TransactionsResponse struct {
	// Transactions in chronological order
	Transactions []TransactionView `json:"transactions"`
}

// TransactionsErrorResponse represents an error response for the history endpoint
// swagger:model TransactionsErrorResponse
type TransactionsErrorResponse struct {
	// Error message
	// default: Account not found
	Error string `json:"error"`
}

// NewTransactionsHandler returns an HTTP handler for an account's history.
// @Summary Account transaction history
// @Description Returns the full transaction history of one of the customer's accounts, oldest first
// @Tags accounts
// @Produce json
// @Param accountID path int true "Account ID"
// @Success 200 {object} handlers.TransactionsResponse "Transaction history"
// @Failure 401 {object} handlers.TransactionsErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.TransactionsErrorResponse "Account owned by another customer"
// @Failure 404 {object} handlers.TransactionsErrorResponse "Account not found"
// @Router /accounts/{accountID}/transactions [get]
// @Security BearerAuth
func NewTransactionsHandler(svc TransactionLister, tokenGetter Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := claimsFromRequest(ctx, w, r, tokenGetter)
		if !ok {
			return
		}

		accountID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Invalid account id"})
			return
		}

		txns, err := svc.Transactions(ctx, claims.UserID, accountID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAccountNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Account not found"})
			case errors.Is(err, services.ErrNotAccountOwner):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Account owned by another customer"})
			default:
				logger.Log.Errorw("failed to list transactions", "accountID", accountID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TransactionsResponse{Transactions: transactionViews(txns)})
	}
}
