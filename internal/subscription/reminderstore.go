package subscription

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "educonnect/internal/common/errors"
)

// ReminderStore is the durable idempotency guard for expiry reminders. A
// reminder is keyed by (userID, subscriptionEnd date); claiming the key more
// than once returns false, so restarts and overlapping scans cannot double
// send.
type ReminderStore interface {
	// Claim records that a reminder for (userID, subscriptionEnd) is being
	// sent. It returns true exactly once per key.
	Claim(ctx context.Context, userID int64, subscriptionEnd time.Time) (bool, error)
}

// PostgresReminderStore persists reminder claims in the
// subscription_reminders table.
type PostgresReminderStore struct {
	db *sql.DB
}

func NewPostgresReminderStore(db *sql.DB) *PostgresReminderStore {
	return &PostgresReminderStore{db: db}
}

func (s *PostgresReminderStore) Claim(ctx context.Context, userID int64, subscriptionEnd time.Time) (bool, error) {
	query := `INSERT INTO subscription_reminders (user_id, subscription_end, sent_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, subscription_end) DO NOTHING`
	res, err := s.db.ExecContext(ctx, query, userID, subscriptionEnd.UTC().Format("2006-01-02"))
	if err != nil {
		return false, apperrors.NewReminderStoreFailedError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewReminderStoreFailedError(err)
	}
	return affected == 1, nil
}

// RedisReminderStore keeps reminder claims as SETNX keys with a TTL well past
// the reminder window. It trades the relational audit trail for speed; claims
// survive process restarts but not a Redis flush.
type RedisReminderStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReminderStore(client *redis.Client) *RedisReminderStore {
	return &RedisReminderStore{client: client, ttl: 30 * 24 * time.Hour}
}

func (s *RedisReminderStore) Claim(ctx context.Context, userID int64, subscriptionEnd time.Time) (bool, error) {
	key := fmt.Sprintf("reminder:%d:%s", userID, subscriptionEnd.UTC().Format("2006-01-02"))
	ok, err := s.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, apperrors.NewReminderStoreFailedError(err)
	}
	return ok, nil
}
