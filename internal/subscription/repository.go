package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "educonnect/internal/common/errors"
)

// Repository accesses subscriber records.
type Repository interface {
	// GetSubscriber loads one user with their subscription state.
	GetSubscriber(ctx context.Context, userID int64) (*Subscriber, error)

	// ExpiringWithin lists active subscribers whose subscription ends between
	// now and now+days. Callers still verify the exact lead time per user.
	ExpiringWithin(ctx context.Context, days int) ([]Subscriber, error)

	// ApplyRenewal writes the renewed plan and period in a single statement so
	// a renewal is never half-applied.
	ApplyRenewal(ctx context.Context, userID int64, planID, paymentIntentID string, start, end time.Time) error
}

// PostgresRepository implements Repository against the users table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const subscriberColumns = `id, first_name, last_name, email, phone, whatsapp_number, push_token,
       preferred_language, subscription_status, plan_id, plan_name, subscription_start, subscription_end`

func (r *PostgresRepository) GetSubscriber(ctx context.Context, userID int64) (*Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM users WHERE id = $1`
	sub, err := scanSubscriber(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewUserNotFoundError(userID)
		}
		return nil, apperrors.NewSubscriptionQueryFailedError(err)
	}
	return sub, nil
}

func (r *PostgresRepository) ExpiringWithin(ctx context.Context, days int) ([]Subscriber, error) {
	cutoff := time.Now().AddDate(0, 0, days)
	query := `SELECT ` + subscriberColumns + `
		FROM users
		WHERE subscription_status = 'active'
		  AND subscription_end IS NOT NULL
		  AND subscription_end > NOW()
		  AND subscription_end <= $1
		ORDER BY subscription_end`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, apperrors.NewSubscriptionQueryFailedError(err)
	}
	defer rows.Close()

	var subs []Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, apperrors.NewSubscriptionQueryFailedError(err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewSubscriptionQueryFailedError(err)
	}
	return subs, nil
}

func (r *PostgresRepository) ApplyRenewal(ctx context.Context, userID int64, planID, paymentIntentID string, start, end time.Time) error {
	query := `UPDATE users
		SET subscription_status = 'active',
		    plan_id = $2,
		    plan_name = $3,
		    payment_intent_id = $4,
		    subscription_start = $5,
		    subscription_end = $6
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, planID, planID, paymentIntentID, start, end)
	if err != nil {
		return apperrors.NewSubscriptionUpdateFailedError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewSubscriptionUpdateFailedError(err)
	}
	if affected == 0 {
		return apperrors.NewUserNotFoundError(userID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscriber(row rowScanner) (*Subscriber, error) {
	var sub Subscriber
	var email, phone, whatsapp, pushToken, language, planID, planName sql.NullString
	var status string
	var start, end sql.NullTime

	err := row.Scan(
		&sub.UserID, &sub.FirstName, &sub.LastName, &email, &phone, &whatsapp, &pushToken,
		&language, &status, &planID, &planName, &start, &end,
	)
	if err != nil {
		return nil, err
	}

	sub.Email = email.String
	sub.Phone = phone.String
	sub.WhatsAppNumber = whatsapp.String
	sub.PushToken = pushToken.String
	sub.PreferredLanguage = languageOrDefault(language.String)
	sub.Status = Status(status)
	sub.PlanID = planID.String
	sub.PlanName = planName.String
	if start.Valid {
		sub.SubscriptionStart = start.Time
	}
	if end.Valid {
		sub.SubscriptionEnd = end.Time
	}
	return &sub, nil
}
