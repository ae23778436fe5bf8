package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonbank/horizon/internal/models"
	"github.com/horizonbank/horizon/internal/services"
)

type fakeAccountCreator struct {
	createFunc func(ctx context.Context, userID int64, accountType string, initialBalance decimal.Decimal) (*models.AccountDB, error)
}

func (f *fakeAccountCreator) CreateAccount(ctx context.Context, userID int64, accountType string, initialBalance decimal.Decimal) (*models.AccountDB, error) {
	return f.createFunc(ctx, userID, accountType, initialBalance)
}

func TestAdminCreateAccountHandler(t *testing.T) {
	svc := &fakeAccountCreator{
		createFunc: func(ctx context.Context, userID int64, accountType string, initialBalance decimal.Decimal) (*models.AccountDB, error) {
			assert.Equal(t, int64(2), userID)
			assert.Equal(t, models.AccountSavings, accountType)
			assert.True(t, initialBalance.Equal(decimal.New(50000, -2)))
			return &models.AccountDB{AccountID: 4, UserID: 2, Type: accountType, Balance: initialBalance}, nil
		},
	}
	handler := NewAdminCreateAccountHandler(svc)

	body := `{"user_id":2,"type":"savings","initial_balance":"500.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/accounts", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp CreateAccountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.Account.ID)
	assert.Equal(t, "500.00", resp.Account.Balance)
}

func TestAdminCreateAccountHandler_DefaultBalance(t *testing.T) {
	svc := &fakeAccountCreator{
		createFunc: func(ctx context.Context, userID int64, accountType string, initialBalance decimal.Decimal) (*models.AccountDB, error) {
			assert.True(t, initialBalance.IsZero())
			return &models.AccountDB{AccountID: 5, UserID: 2, Type: accountType, Balance: initialBalance}, nil
		},
	}
	handler := NewAdminCreateAccountHandler(svc)

	body := `{"user_id":2,"type":"checking"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/accounts", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminCreateAccountHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{
			name:       "invalid json",
			body:       `{"user_id":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unparsable balance",
			body:       `{"user_id":2,"type":"checking","initial_balance":"lots"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown type",
			body:       `{"user_id":2,"type":"offshore","initial_balance":"0.00"}`,
			svcErr:     services.ErrUnknownAccountType,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative balance",
			body:       `{"user_id":2,"type":"checking","initial_balance":"-1.00"}`,
			svcErr:     services.ErrInvalidAmount,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAccountCreator{
				createFunc: func(ctx context.Context, userID int64, accountType string, initialBalance decimal.Decimal) (*models.AccountDB, error) {
					return nil, tt.svcErr
				},
			}
			handler := NewAdminCreateAccountHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/accounts", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
