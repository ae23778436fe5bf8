package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonbank/horizon/internal/jwt"
	"github.com/horizonbank/horizon/internal/models"
)

// fakeTokener resolves every request to a fixed set of claims, or fails.
type fakeTokener struct {
	claims *jwt.Claims
	err    error
}

func (f *fakeTokener) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token", nil
}

func (f *fakeTokener) GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func customerTokener(userID int64) *fakeTokener {
	return &fakeTokener{claims: &jwt.Claims{UserID: userID, Role: models.RoleCustomer}}
}

type fakeDashboarder struct {
	dashboardFunc func(ctx context.Context, userID int64) ([]models.AccountDB, []models.TransactionDB, error)
}

func (f *fakeDashboarder) Dashboard(ctx context.Context, userID int64) ([]models.AccountDB, []models.TransactionDB, error) {
	return f.dashboardFunc(ctx, userID)
}

func TestDashboardHandler(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	svc := &fakeDashboarder{
		dashboardFunc: func(ctx context.Context, userID int64) ([]models.AccountDB, []models.TransactionDB, error) {
			assert.Equal(t, int64(7), userID)
			return []models.AccountDB{
					{AccountID: 1, UserID: 7, Type: models.AccountChecking, Balance: decimal.New(250000, -2)},
				}, []models.TransactionDB{
					{TransactionID: 3, AccountID: 1, Type: models.TransactionWithdrawal, Amount: decimal.New(12050, -2), Description: "CARD PURCHASE - TARGET - REF:8FK2MQ01ZDW7", OccurredAt: day},
				}, nil
		},
	}
	handler := NewDashboardHandler(svc, customerTokener(7))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Accounts, 1)
	assert.Equal(t, "2500.00", resp.Accounts[0].Balance)
	require.Len(t, resp.RecentTransactions, 1)
	assert.Equal(t, "120.50", resp.RecentTransactions[0].Amount)
	assert.Equal(t, "2024-01-15", resp.RecentTransactions[0].Date)
	assert.Equal(t, "withdrawal", resp.RecentTransactions[0].Type)
}

func TestDashboardHandler_Unauthorized(t *testing.T) {
	svc := &fakeDashboarder{
		dashboardFunc: func(ctx context.Context, userID int64) ([]models.AccountDB, []models.TransactionDB, error) {
			t.Fatal("service must not be called")
			return nil, nil, nil
		},
	}
	handler := NewDashboardHandler(svc, &fakeTokener{err: errors.New("no token")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboardHandler_ServiceError(t *testing.T) {
	svc := &fakeDashboarder{
		dashboardFunc: func(ctx context.Context, userID int64) ([]models.AccountDB, []models.TransactionDB, error) {
			return nil, nil, errors.New("db down")
		},
	}
	handler := NewDashboardHandler(svc, customerTokener(7))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
