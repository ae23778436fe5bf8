package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/horizonbank/horizon/internal/jwt"
	"github.com/horizonbank/horizon/internal/models"
)

type fakeTokener struct {
	token       string
	tokenErr    error
	validateErr error
	claims      *jwt.Claims
	claimsErr   error
}

func (f *fakeTokener) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	return f.token, f.tokenErr
}

func (f *fakeTokener) Validate(ctx context.Context, tokenString string) error {
	return f.validateErr
}

func (f *fakeTokener) GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	return f.claims, f.claimsErr
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name             string
		tokener          *fakeTokener
		expectedStatus   int
		expectNextCalled bool
	}{
		{
			name:             "NoToken",
			tokener:          &fakeTokener{tokenErr: errors.New("no token")},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:             "InvalidToken",
			tokener:          &fakeTokener{token: "sometoken", validateErr: errors.New("invalid token")},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:             "ValidToken",
			tokener:          &fakeTokener{token: "validtoken"},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(tt.tokener)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name             string
		tokener          *fakeTokener
		expectedStatus   int
		expectNextCalled bool
	}{
		{
			name:             "NoToken",
			tokener:          &fakeTokener{tokenErr: errors.New("no token")},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:             "BadClaims",
			tokener:          &fakeTokener{token: "sometoken", claimsErr: errors.New("bad token")},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:             "WrongRole",
			tokener:          &fakeTokener{token: "sometoken", claims: &jwt.Claims{UserID: 2, Role: models.RoleCustomer}},
			expectedStatus:   http.StatusForbidden,
			expectNextCalled: false,
		},
		{
			name:             "AdminRole",
			tokener:          &fakeTokener{token: "sometoken", claims: &jwt.Claims{UserID: 1, Role: models.RoleAdmin}},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := RequireRole(tt.tokener, models.RoleAdmin)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
		})
	}
}
