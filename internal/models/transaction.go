package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a balance change. The amount itself is
// always positive; the type carries the sign.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// TransactionDB represents a transaction row in the database.
type TransactionDB struct {
	TransactionID int64           `json:"id" db:"transaction_id"`     // Unique, monotonically assigned per store
	AccountID     int64           `json:"account_id" db:"account_id"` // Owning account
	Type          TransactionType `json:"type" db:"type"`             // deposit or withdrawal
	Amount        decimal.Decimal `json:"-" db:"amount"`              // Always positive, two fractional digits
	Description   string          `json:"description" db:"description"`
	OccurredAt    time.Time       `json:"timestamp" db:"occurred_at"` // Day-granularity calendar date
}

// AmountString returns the amount in the wire format "NNNN.NN".
func (t TransactionDB) AmountString() string {
	return t.Amount.StringFixed(2)
}

// Signed returns the amount with the sign implied by the transaction type.
func (t TransactionDB) Signed() decimal.Decimal {
	if t.Type == TransactionWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
