package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

// UserReadRepository reads users from Postgres.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsernameOrEmail returns the first user matching the non-nil filters,
// or nil when no user matches.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE ($1::VARCHAR IS NULL OR username = $1)
		  AND ($2::VARCHAR IS NULL OR email = $2)
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username, email)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users with the customer role, newest first.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE role = 'customer'
		ORDER BY created_at DESC
	`

	var users []models.UserDB
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"rows", len(users),
		"error", err,
	)

	return users, err
}

// UserWriteRepository writes users to Postgres.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a user and returns its assigned id.
func (r *UserWriteRepository) Save(ctx context.Context, username, passwordHash, email, role string) (int64, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING user_id
	`
	args := []any{username, email, passwordHash, role}

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}

	var userID int64
	err := sqlx.GetContext(ctx, executor, &userID, query, args...)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email, role},
		"result", userID,
		"error", err,
	)

	return userID, err
}
