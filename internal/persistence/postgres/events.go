package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bezzego/healthy-bot-AI/internal/outbox"
)

// EventRecorder enqueues standalone domain events that are not part of
// another repository's transaction.
type EventRecorder struct {
	pool *pgxpool.Pool
}

func NewEventRecorder(pool *pgxpool.Pool) *EventRecorder {
	return &EventRecorder{pool: pool}
}

func (r *EventRecorder) CheckinRecorded(ctx context.Context, userID int64, kind string, date time.Time) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	err = outbox.Enqueue(ctx, tx, outbox.EventCheckinRecorded, userID, outbox.CheckinRecordedPayload{
		UserID:     userID,
		Kind:       kind,
		Date:       date.Format("2006-01-02"),
		RecordedAt: time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return fmt.Errorf("enqueue checkin event: %w", err)
	}
	return tx.Commit(ctx)
}
