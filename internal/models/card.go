package models

import "time"

// Card statuses
const (
	CardPending  = "pending"
	CardActive   = "active"
	CardRejected = "rejected"
)

// CardDB represents an issued (or requested) card row in the database
type CardDB struct {
	CardID       int64     `json:"id" db:"card_id"`                  // Unique card identifier
	AccountID    int64     `json:"account_id" db:"account_id"`       // Account the card draws on
	MaskedNumber string    `json:"masked_number" db:"masked_number"` // e.g. "**** **** **** 4921"
	Status       string    `json:"status" db:"status"`               // pending, active or rejected
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
