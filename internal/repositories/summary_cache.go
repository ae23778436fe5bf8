package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

// SummaryCacheRepository caches per-user account summaries in Redis so the
// dashboard does not re-read every account row on each request.
type SummaryCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewSummaryCacheRepository creates a cache with the given TTL.
func NewSummaryCacheRepository(client *redis.Client, expiration time.Duration) *SummaryCacheRepository {
	return &SummaryCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func summaryKey(userID int64) string {
	return fmt.Sprintf("account_summary:%d", userID)
}

// GetAccounts returns the cached account list for a user. A cache miss is
// reported as an error so callers fall through to storage.
func (r *SummaryCacheRepository) GetAccounts(ctx context.Context, userID int64) ([]models.AccountDB, error) {
	key := summaryKey(userID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("cache get",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("account summary not cached for user %d", userID)
		}
		return nil, err
	}

	var accounts []models.AccountDB
	if err := json.Unmarshal([]byte(val), &accounts); err != nil {
		logger.Log.Infow("cache get",
			"key", key,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow("cache get",
		"key", key,
		"accounts", len(accounts),
	)
	return accounts, nil
}

// SetAccounts caches a user's account list with the configured TTL.
func (r *SummaryCacheRepository) SetAccounts(ctx context.Context, userID int64, accounts []models.AccountDB) error {
	key := summaryKey(userID)

	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("cache set",
		"key", key,
		"accounts", len(accounts),
		"error", err,
	)

	return err
}

// Invalidate drops a user's cached summary after a balance mutation.
func (r *SummaryCacheRepository) Invalidate(ctx context.Context, userID int64) error {
	key := summaryKey(userID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("cache invalidate",
		"key", key,
		"error", err,
	)

	return err
}
