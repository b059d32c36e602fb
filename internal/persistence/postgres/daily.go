package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// DailyRepository is the Postgres implementation of domain.DailyRepository.
type DailyRepository struct {
	pool *pgxpool.Pool
}

func NewDailyRepository(pool *pgxpool.Pool) *DailyRepository {
	return &DailyRepository{pool: pool}
}

const dailyColumns = `id, user_id, date,
    morning_sleep_quality, morning_sleep_hours, morning_energy,
    evening_mood, daily_steps, physical_activity, activity_type, active_calories, evening_stool,
    total_calories, total_protein, total_fats, total_carbs, total_fiber,
    water_intake_ml, created_at, updated_at`

func scanDaily(scan func(dest ...any) error) (*domain.DailyRecord, error) {
	var r domain.DailyRecord
	var sleep, mood, stool, activityType *string
	err := scan(&r.ID, &r.UserID, &r.Date,
		&sleep, &r.MorningSleepHours, &r.MorningEnergy,
		&mood, &r.DailySteps, &r.PhysicalActivity, &activityType, &r.ActiveCalories, &stool,
		&r.TotalCalories, &r.TotalProtein, &r.TotalFats, &r.TotalCarbs, &r.TotalFiber,
		&r.WaterIntakeML, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if sleep != nil {
		v := domain.SleepRating(*sleep)
		r.MorningSleepQuality = &v
	}
	if mood != nil {
		v := domain.Mood(*mood)
		r.EveningMood = &v
	}
	if stool != nil {
		v := domain.EveningStool(*stool)
		r.EveningStool = &v
	}
	if activityType != nil {
		r.ActivityType = *activityType
	}
	return &r, nil
}

// GetOrCreate returns the record for the calendar date, inserting an empty
// one on first access. The (user_id, date) unique index makes this safe under
// concurrent callers.
func (r *DailyRepository) GetOrCreate(ctx context.Context, userID int64, date time.Time) (*domain.DailyRecord, error) {
	const query = `
        INSERT INTO daily_records (user_id, date, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        ON CONFLICT (user_id, date) DO UPDATE SET updated_at = daily_records.updated_at
        RETURNING ` + dailyColumns

	row := r.pool.QueryRow(ctx, query, userID, date)
	record, err := scanDaily(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("get or create daily record: %w", err)
	}
	return record, nil
}

// Find is the read-only lookup; reminder sweeps use it so checking a day
// never creates a row.
func (r *DailyRepository) Find(ctx context.Context, userID int64, date time.Time) (*domain.DailyRecord, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+dailyColumns+`
        FROM daily_records
        WHERE user_id = $1 AND date = $2`, userID, date)
	record, err := scanDaily(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find daily record: %w", err)
	}
	return record, nil
}

func (r *DailyRepository) Save(ctx context.Context, record *domain.DailyRecord) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE daily_records
        SET morning_sleep_quality = $2,
            morning_sleep_hours = $3,
            morning_energy = $4,
            evening_mood = $5,
            daily_steps = $6,
            physical_activity = $7,
            activity_type = $8,
            active_calories = $9,
            evening_stool = $10,
            total_calories = $11,
            total_protein = $12,
            total_fats = $13,
            total_carbs = $14,
            total_fiber = $15,
            water_intake_ml = $16,
            updated_at = NOW()
        WHERE id = $1`,
		record.ID,
		(*string)(record.MorningSleepQuality), record.MorningSleepHours, record.MorningEnergy,
		(*string)(record.EveningMood), record.DailySteps, record.PhysicalActivity,
		nullIfEmpty(record.ActivityType), record.ActiveCalories, (*string)(record.EveningStool),
		record.TotalCalories, record.TotalProtein, record.TotalFats, record.TotalCarbs, record.TotalFiber,
		record.WaterIntakeML)
	if err != nil {
		return fmt.Errorf("save daily record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *DailyRepository) Range(ctx context.Context, userID int64, from, to time.Time) ([]domain.DailyRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+dailyColumns+`
        FROM daily_records
        WHERE user_id = $1 AND date >= $2 AND date <= $3
        ORDER BY date`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("range daily records: %w", err)
	}
	defer rows.Close()

	var records []domain.DailyRecord
	for rows.Next() {
		record, err := scanDaily(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}
