package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// NotificationLogRepository is the Postgres implementation of
// domain.NotificationLogRepository.
type NotificationLogRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationLogRepository(pool *pgxpool.Pool) *NotificationLogRepository {
	return &NotificationLogRepository{pool: pool}
}

func (r *NotificationLogRepository) Sent(ctx context.Context, userID int64, kind domain.NotificationKind, period string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM notification_log
            WHERE user_id = $1 AND kind = $2 AND period = $3
        )`, userID, kind, period).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check notification log: %w", err)
	}
	return exists, nil
}

func (r *NotificationLogRepository) MarkSent(ctx context.Context, userID int64, kind domain.NotificationKind, period string) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO notification_log (user_id, kind, period, sent_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (user_id, kind, period) DO NOTHING`,
		userID, kind, period)
	if err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	return nil
}
