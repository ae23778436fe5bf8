package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supported account types
const (
	AccountChecking = "checking"
	AccountSavings  = "savings"
	AccountCredit   = "credit"
)

// AccountDB represents an account row in the database
type AccountDB struct {
	AccountID int64           `json:"id" db:"account_id"`         // Unique account identifier
	UserID    int64           `json:"user_id" db:"user_id"`       // Identifier of the account's owner
	Type      string          `json:"type" db:"type"`             // Account type (checking, savings, credit)
	Balance   decimal.Decimal `json:"balance" db:"balance"`       // Current balance
	CreatedAt time.Time       `json:"created_at" db:"created_at"` // Timestamp when the account was created
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"` // Timestamp of the last account update
}

// ValidAccountType reports whether t is one of the supported account types.
func ValidAccountType(t string) bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit:
		return true
	}
	return false
}
