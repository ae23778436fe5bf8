package models

import "time"

// User roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       int64     `json:"id" db:"user_id"`                // Primary key
	Username     string    `json:"username" db:"username"`         // Unique username
	Email        string    `json:"email" db:"email"`               // User email
	PasswordHash string    `json:"-" db:"password_hash"`           // Hashed password, never serialized
	Role         string    `json:"role" db:"role"`                 // customer or admin
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`     // Last update timestamp
}
