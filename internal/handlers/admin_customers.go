package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

// CustomerLister defines the interface that the admin service must implement.
type CustomerLister interface {
	Customers(ctx context.Context) ([]models.UserDB, error)
}

// CustomerView is the wire form of a customer
// swagger:model CustomerView
type CustomerView struct {
	// User id
	// default: 2
	ID int64 `json:"id"`

	// Username
	// default: john_doe
	Username string `json:"username"`

	// Email
	// default: john@example.com
	Email string `json:"email"`

	// Signup date
	// default: 2024-01-15
	CreatedAt string `json:"created_at"`
}

// CustomersResponse lists all customers
// swagger:model CustomersResponse
type CustomersResponse struct {
	Customers []CustomerView `json:"customers"`
}

// AdminErrorResponse represents an error response for admin endpoints
// swagger:model AdminErrorResponse
type AdminErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewAdminCustomersHandler returns an HTTP handler listing all customers.
// @Summary List customers
// @Description Returns all customer users, newest first
// @Tags admin
// @Produce json
// @Success 200 {object} handlers.CustomersResponse "Customers"
// @Failure 401 {object} handlers.AdminErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.AdminErrorResponse "Forbidden"
// @Router /admin/customers [get]
// @Security BearerAuth
func NewAdminCustomersHandler(svc CustomerLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.Customers(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to list customers", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(AdminErrorResponse{Error: "Internal server error"})
			return
		}

		views := make([]CustomerView, 0, len(users))
		for _, u := range users {
			views = append(views, CustomerView{
				ID:        u.UserID,
				Username:  u.Username,
				Email:     u.Email,
				CreatedAt: u.CreatedAt.Format(time.DateOnly),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(CustomersResponse{Customers: views})
	}
}
