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

// MeasurementRepository is the Postgres implementation of
// domain.MeasurementRepository.
type MeasurementRepository struct {
	pool *pgxpool.Pool
}

func NewMeasurementRepository(pool *pgxpool.Pool) *MeasurementRepository {
	return &MeasurementRepository{pool: pool}
}

// Upsert writes the row for (user, month), keeping existing values for fields
// the new measurement leaves nil.
func (r *MeasurementRepository) Upsert(ctx context.Context, m *domain.MonthlyMeasurement) error {
	err := r.pool.QueryRow(ctx, `
        INSERT INTO monthly_measurements (user_id, month, weight, waist_circumference, hips_circumference, chest_circumference, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        ON CONFLICT (user_id, month) DO UPDATE
            SET weight = COALESCE(EXCLUDED.weight, monthly_measurements.weight),
                waist_circumference = COALESCE(EXCLUDED.waist_circumference, monthly_measurements.waist_circumference),
                hips_circumference = COALESCE(EXCLUDED.hips_circumference, monthly_measurements.hips_circumference),
                chest_circumference = COALESCE(EXCLUDED.chest_circumference, monthly_measurements.chest_circumference),
                updated_at = NOW()
        RETURNING id`,
		m.UserID, m.Month, m.Weight, m.WaistCircumference, m.HipsCircumference, m.ChestCircumference,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("upsert monthly measurement: %w", err)
	}
	return nil
}

func (r *MeasurementRepository) ForMonth(ctx context.Context, userID int64, month time.Time) (*domain.MonthlyMeasurement, error) {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

	var m domain.MonthlyMeasurement
	err := r.pool.QueryRow(ctx, `
        SELECT id, user_id, month, weight, waist_circumference, hips_circumference, chest_circumference, created_at, updated_at
        FROM monthly_measurements
        WHERE user_id = $1 AND month = $2`,
		userID, monthStart,
	).Scan(&m.ID, &m.UserID, &m.Month, &m.Weight, &m.WaistCircumference, &m.HipsCircumference, &m.ChestCircumference, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load monthly measurement: %w", err)
	}
	return &m, nil
}
