package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

// TransactionReadRepository reads transactions from Postgres.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// ListByAccountID returns all transactions of an account in chronological
// order (ties broken by insertion order).
func (r *TransactionReadRepository) ListByAccountID(ctx context.Context, accountID int64) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, account_id, type, amount, description, occurred_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY occurred_at, transaction_id
	`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, accountID)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID},
		"rows", len(txns),
		"error", err,
	)

	return txns, err
}

// CountAll returns the total number of stored transactions. The seeder uses
// it to decide whether a database still needs demo history.
func (r *TransactionReadRepository) CountAll(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM transactions`

	var n int64
	err := r.db.GetContext(ctx, &n, query)

	logger.Log.Infow("query",
		"sql", query,
		"result", n,
		"error", err,
	)

	return n, err
}

// TransactionWriteRepository writes transactions to Postgres.
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a transaction and returns the stored row with its assigned id.
func (r *TransactionWriteRepository) Save(ctx context.Context, accountID int64, txType models.TransactionType, amount decimal.Decimal, description string, occurredAt time.Time) (*models.TransactionDB, error) {
	const query = `
		INSERT INTO transactions (account_id, type, amount, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING transaction_id, account_id, type, amount, description, occurred_at
	`
	args := []any{accountID, txType, amount, description, occurredAt}

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}

	var txn models.TransactionDB
	err := sqlx.GetContext(ctx, executor, &txn, query, args...)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &txn, nil
}
