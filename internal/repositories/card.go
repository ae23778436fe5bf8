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

// CardReadRepository reads cards from Postgres.
type CardReadRepository struct {
	db *sqlx.DB
}

func NewCardReadRepository(db *sqlx.DB) *CardReadRepository {
	return &CardReadRepository{db: db}
}

// GetByID returns the card with the given id, or nil when it does not exist.
func (r *CardReadRepository) GetByID(ctx context.Context, cardID int64) (*models.CardDB, error) {
	const query = `
		SELECT card_id, account_id, masked_number, status, created_at, updated_at
		FROM cards
		WHERE card_id = $1
	`

	var card models.CardDB
	err := r.db.GetContext(ctx, &card, query, cardID)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{cardID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// CardWriteRepository writes cards to Postgres.
type CardWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewCardWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *CardWriteRepository {
	return &CardWriteRepository{db: db, txGetter: txGetter}
}

func (r *CardWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a pending card and returns the stored row.
func (r *CardWriteRepository) Save(ctx context.Context, accountID int64, maskedNumber string) (*models.CardDB, error) {
	const query = `
		INSERT INTO cards (account_id, masked_number, status, created_at, updated_at)
		VALUES ($1, $2, 'pending', NOW(), NOW())
		RETURNING card_id, account_id, masked_number, status, created_at, updated_at
	`

	var card models.CardDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &card, query, accountID, maskedNumber)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID, maskedNumber},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateStatus moves a card to a new status.
func (r *CardWriteRepository) UpdateStatus(ctx context.Context, cardID int64, status string) error {
	const query = `
		UPDATE cards
		SET status = $2, updated_at = NOW()
		WHERE card_id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, cardID, status)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{cardID, status},
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
