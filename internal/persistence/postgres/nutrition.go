package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/outbox"
)

// NutritionRepository is the Postgres implementation of
// domain.NutritionRepository. Entry writes and the daily totals move in one
// transaction so the totals never drift from the entries.
type NutritionRepository struct {
	pool *pgxpool.Pool
}

func NewNutritionRepository(pool *pgxpool.Pool) *NutritionRepository {
	return &NutritionRepository{pool: pool}
}

func (r *NutritionRepository) Add(ctx context.Context, entry *domain.NutritionEntry) error {
	touchTimestamps(&entry.CreatedAt)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
        INSERT INTO nutrition_entries (user_id, daily_record_id, food_name,
            calories, protein, fats, carbs, fiber,
            photo_file_id, voice_file_id, meal_time, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id`,
		entry.UserID, entry.DailyRecordID, entry.FoodName,
		entry.Calories, entry.Protein, entry.Fats, entry.Carbs, entry.Fiber,
		nullIfEmpty(entry.PhotoFileID), nullIfEmpty(entry.VoiceFileID), entry.MealTime, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("insert nutrition entry: %w", err)
	}

	if err = r.applyTotals(ctx, tx, entry.DailyRecordID, entry, 1); err != nil {
		return err
	}

	source := "text"
	switch {
	case entry.PhotoFileID != "":
		source = "photo"
	case entry.VoiceFileID != "":
		source = "voice"
	}
	err = outbox.Enqueue(ctx, tx, outbox.EventNutritionLogged, entry.UserID, outbox.NutritionLoggedPayload{
		UserID:   entry.UserID,
		FoodName: entry.FoodName,
		Calories: entry.Calories,
		Source:   source,
		LoggedAt: entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *NutritionRepository) Delete(ctx context.Context, entryID, userID int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	var entry domain.NutritionEntry
	err = tx.QueryRow(ctx, `
        DELETE FROM nutrition_entries
        WHERE id = $1 AND user_id = $2
        RETURNING daily_record_id, calories, protein, fats, carbs, fiber`,
		entryID, userID,
	).Scan(&entry.DailyRecordID, &entry.Calories, &entry.Protein, &entry.Fats, &entry.Carbs, &entry.Fiber)
	if errors.Is(err, pgx.ErrNoRows) {
		err = domain.ErrRecordNotFound
		return err
	}
	if err != nil {
		return fmt.Errorf("delete nutrition entry: %w", err)
	}

	if err = r.applyTotals(ctx, tx, entry.DailyRecordID, &entry, -1); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// applyTotals shifts the owning record's totals by the entry values times
// sign, clamping at zero on the way down.
func (r *NutritionRepository) applyTotals(ctx context.Context, tx pgx.Tx, recordID int64, entry *domain.NutritionEntry, sign float64) error {
	_, err := tx.Exec(ctx, `
        UPDATE daily_records
        SET total_calories = GREATEST(total_calories + $2, 0),
            total_protein = GREATEST(total_protein + $3, 0),
            total_fats = GREATEST(total_fats + $4, 0),
            total_carbs = GREATEST(total_carbs + $5, 0),
            total_fiber = GREATEST(total_fiber + $6, 0),
            updated_at = NOW()
        WHERE id = $1`,
		recordID,
		sign*entry.Calories, sign*entry.Protein, sign*entry.Fats, sign*entry.Carbs, sign*entry.Fiber)
	if err != nil {
		return fmt.Errorf("update daily totals: %w", err)
	}
	return nil
}

func (r *NutritionRepository) ListForRecord(ctx context.Context, dailyRecordID int64) ([]domain.NutritionEntry, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, user_id, daily_record_id, food_name,
            calories, protein, fats, carbs, fiber,
            COALESCE(photo_file_id, ''), COALESCE(voice_file_id, ''), meal_time, created_at
        FROM nutrition_entries
        WHERE daily_record_id = $1
        ORDER BY meal_time`, dailyRecordID)
	if err != nil {
		return nil, fmt.Errorf("list nutrition entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.NutritionEntry
	for rows.Next() {
		var e domain.NutritionEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.DailyRecordID, &e.FoodName,
			&e.Calories, &e.Protein, &e.Fats, &e.Carbs, &e.Fiber,
			&e.PhotoFileID, &e.VoiceFileID, &e.MealTime, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
