package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/horizonbank/horizon/internal/jwt"
	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

// Tokener defines the token methods protected handlers need.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// Dashboarder defines the interface that the service must implement.
type Dashboarder interface {
	Dashboard(ctx context.Context, userID int64) ([]models.AccountDB, []models.TransactionDB, error)
}

// DashboardResponse represents the customer dashboard
// swagger:model DashboardResponse
type DashboardResponse struct {
	// The customer's accounts
	Accounts []AccountView `json:"accounts"`

	// Most recent transactions across all accounts, newest first
	RecentTransactions []TransactionView `json:"recent_transactions"`
}

// DashboardErrorResponse represents an error response for the dashboard
// swagger:model DashboardErrorResponse
type DashboardErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewDashboardHandler returns an HTTP handler for the customer dashboard.
// @Summary Customer dashboard
// @Description Returns the customer's accounts and their most recent transactions
// @Tags accounts
// @Produce json
// @Success 200 {object} handlers.DashboardResponse "Dashboard"
// @Failure 401 {object} handlers.DashboardErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.DashboardErrorResponse "Internal server error"
// @Router /dashboard [get]
// @Security BearerAuth
func NewDashboardHandler(svc Dashboarder, tokenGetter Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := claimsFromRequest(ctx, w, r, tokenGetter)
		if !ok {
			return
		}

		accounts, recent, err := svc.Dashboard(ctx, claims.UserID)
		if err != nil {
			logger.Log.Errorw("failed to build dashboard", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(DashboardErrorResponse{Error: "Internal server error"})
			return
		}

		resp := DashboardResponse{
			Accounts:           accountViews(accounts),
			RecentTransactions: transactionViews(recent),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// claimsFromRequest extracts and validates claims, writing a 401 on failure.
func claimsFromRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, tokenGetter Tokener) (*jwt.Claims, bool) {
	tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
	if err != nil {
		logger.Log.Errorw("failed to get token from request", "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(DashboardErrorResponse{Error: "Unauthorized"})
		return nil, false
	}

	claims, err := tokenGetter.GetClaims(ctx, tokenStr)
	if err != nil {
		logger.Log.Errorw("failed to get claims from token", "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(DashboardErrorResponse{Error: "Unauthorized"})
		return nil, false
	}

	return claims, true
}
