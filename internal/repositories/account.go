package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

// AccountReadRepository reads accounts from Postgres.
type AccountReadRepository struct {
	db *sqlx.DB
}

func NewAccountReadRepository(db *sqlx.DB) *AccountReadRepository {
	return &AccountReadRepository{db: db}
}

// GetByID returns the account with the given id, or nil when it does not exist.
func (r *AccountReadRepository) GetByID(ctx context.Context, accountID int64) (*models.AccountDB, error) {
	const query = `
		SELECT account_id, user_id, type, balance, created_at, updated_at
		FROM accounts
		WHERE account_id = $1
	`

	var account models.AccountDB
	err := r.db.GetContext(ctx, &account, query, accountID)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListByUserID returns all accounts owned by the user, oldest first.
func (r *AccountReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.AccountDB, error) {
	const query = `
		SELECT account_id, user_id, type, balance, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY account_id
	`

	var accounts []models.AccountDB
	err := r.db.SelectContext(ctx, &accounts, query, userID)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"rows", len(accounts),
		"error", err,
	)

	return accounts, err
}

// AccountWriteRepository writes accounts to Postgres.
type AccountWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewAccountWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *AccountWriteRepository {
	return &AccountWriteRepository{db: db, txGetter: txGetter}
}

func (r *AccountWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts an account and returns the stored row.
func (r *AccountWriteRepository) Save(ctx context.Context, userID int64, accountType string, balance decimal.Decimal) (*models.AccountDB, error) {
	const query = `
		INSERT INTO accounts (user_id, type, balance, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING account_id, user_id, type, balance, created_at, updated_at
	`

	var account models.AccountDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &account, query, userID, accountType, balance)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, accountType, balance},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateBalance sets the account balance. The guard against overdrafts lives
// in the service layer; this is a plain write.
func (r *AccountWriteRepository) UpdateBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	const query = `
		UPDATE accounts
		SET balance = $2, updated_at = NOW()
		WHERE account_id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, accountID, balance)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID, balance},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
