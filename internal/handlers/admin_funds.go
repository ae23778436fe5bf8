package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
	"github.com/horizonbank/horizon/internal/services"
)

// FundsAdjuster defines the credit/debit operations of the admin service.
type FundsAdjuster interface {
	Credit(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.AccountDB, error)
	Debit(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.AccountDB, error)
}

// AdjustFundsRequest represents the JSON body for a credit or debit
// swagger:model AdjustFundsRequest
type AdjustFundsRequest struct {
	// Amount, "NNNN.NN"
	// required: true
	// default: 100.00
	Amount string `json:"amount"`

	// Optional statement description
	// default: COURTESY CREDIT
	Description string `json:"description"`
}

// AdjustFundsResponse represents the account after a credit or debit
// swagger:model AdjustFundsResponse
type AdjustFundsResponse struct {
	// Success message
	// default: Account updated successfully
	Message string `json:"message"`

	// The account after the adjustment
	Account AccountView `json:"account"`
}

// NewAdminCreditHandler returns an HTTP handler crediting an account.
// @Summary Credit account
// @Description Adds funds to an account and records a deposit transaction
// @Tags admin
// @Accept json
// @Produce json
// @Param accountID path int true "Account ID"
// @Param request body handlers.AdjustFundsRequest true "Credit Request"
// @Success 200 {object} handlers.AdjustFundsResponse "Account credited"
// @Failure 400 {object} handlers.AdminErrorResponse "Invalid amount"
// @Failure 404 {object} handlers.AdminErrorResponse "Account not found"
// @Router /admin/accounts/{accountID}/credit [post]
// @Security BearerAuth
func NewAdminCreditHandler(svc FundsAdjuster) http.HandlerFunc {
	return adjustFundsHandler(svc.Credit)
}

// NewAdminDebitHandler returns an HTTP handler debiting an account.
// @Summary Debit account
// @Description Removes funds from an account and records a withdrawal transaction; refuses overdrafts
// @Tags admin
// @Accept json
// @Produce json
// @Param accountID path int true "Account ID"
// @Param request body handlers.AdjustFundsRequest true "Debit Request"
// @Success 200 {object} handlers.AdjustFundsResponse "Account debited"
// @Failure 400 {object} handlers.AdminErrorResponse "Invalid amount / insufficient funds"
// @Failure 404 {object} handlers.AdminErrorResponse "Account not found"
// @Router /admin/accounts/{accountID}/debit [post]
// @Security BearerAuth
func NewAdminDebitHandler(svc FundsAdjuster) http.HandlerFunc {
	return adjustFundsHandler(svc.Debit)
}

func adjustFundsHandler(adjust func(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.AccountDB, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid account id"})
			return
		}

		var req AdjustFundsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid request body"})
			return
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid amount"})
			return
		}

		account, err := adjust(r.Context(), accountID, amount, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAmount):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Invalid amount"})
			case errors.Is(err, services.ErrInsufficientFunds):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Insufficient funds"})
			case errors.Is(err, services.ErrAccountNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Account not found"})
			default:
				logger.Log.Errorw("failed to adjust funds", "accountID", accountID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AdjustFundsResponse{
			Message: "Account updated successfully",
			Account: accountView(*account),
		})
	}
}
