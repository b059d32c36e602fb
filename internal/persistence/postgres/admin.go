package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// AdminRequestRepository is the Postgres implementation of
// domain.AdminRequestRepository.
type AdminRequestRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRequestRepository(pool *pgxpool.Pool) *AdminRequestRepository {
	return &AdminRequestRepository{pool: pool}
}

func (r *AdminRequestRepository) Create(ctx context.Context, request *domain.AdminRequest) error {
	touchTimestamps(&request.CreatedAt)
	request.UpdatedAt = request.CreatedAt

	err := r.pool.QueryRow(ctx, `
        INSERT INTO admin_requests (user_id, type, title, message,
            recipe_composition, recipe_photo_file_id, recipe_description,
            results_before_photo_id, results_after_photo_id, results_age, results_height,
            results_weight_before, results_weight_after, results_comment,
            status, admin_response, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
        RETURNING id`,
		request.UserID, request.Type, request.Title, request.Message,
		nullIfEmpty(request.RecipeComposition), nullIfEmpty(request.RecipePhotoFileID), nullIfEmpty(request.RecipeDescription),
		nullIfEmpty(request.ResultsBeforePhotoID), nullIfEmpty(request.ResultsAfterPhotoID), request.ResultsAge, request.ResultsHeight,
		request.ResultsWeightBefore, request.ResultsWeightAfter, nullIfEmpty(request.ResultsComment),
		request.Status, nullIfEmpty(request.AdminResponse), request.CreatedAt, request.UpdatedAt,
	).Scan(&request.ID)
	if err != nil {
		return fmt.Errorf("insert admin request: %w", err)
	}
	return nil
}

func (r *AdminRequestRepository) ListPending(ctx context.Context) ([]domain.AdminRequest, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, user_id, type, title, message,
            COALESCE(recipe_composition, ''), COALESCE(recipe_photo_file_id, ''), COALESCE(recipe_description, ''),
            COALESCE(results_before_photo_id, ''), COALESCE(results_after_photo_id, ''), results_age, results_height,
            results_weight_before, results_weight_after, COALESCE(results_comment, ''),
            status, COALESCE(admin_response, ''), created_at, updated_at
        FROM admin_requests
        WHERE status = $1
        ORDER BY created_at`, domain.RequestPending)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.AdminRequest
	for rows.Next() {
		var req domain.AdminRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Type, &req.Title, &req.Message,
			&req.RecipeComposition, &req.RecipePhotoFileID, &req.RecipeDescription,
			&req.ResultsBeforePhotoID, &req.ResultsAfterPhotoID, &req.ResultsAge, &req.ResultsHeight,
			&req.ResultsWeightBefore, &req.ResultsWeightAfter, &req.ResultsComment,
			&req.Status, &req.AdminResponse, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *AdminRequestRepository) UpdateStatus(ctx context.Context, requestID int64, status domain.AdminRequestStatus, response string) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE admin_requests
        SET status = $2, admin_response = $3, updated_at = NOW()
        WHERE id = $1`, requestID, status, nullIfEmpty(response))
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// Stats aggregates anonymized usage numbers across all users since the given
// time.
func (r *AdminRequestRepository) Stats(ctx context.Context, since time.Time) (*domain.UsageStats, error) {
	var stats domain.UsageStats
	err := r.pool.QueryRow(ctx, `
        SELECT
            COALESCE(AVG(morning_energy), 0),
            COALESCE(AVG(NULLIF(total_calories, 0)), 0),
            COALESCE(AVG(NULLIF(total_protein, 0)), 0),
            COALESCE(AVG(daily_steps), 0),
            (SELECT COUNT(*) FROM users),
            COUNT(*)
        FROM daily_records
        WHERE date >= $1`, since,
	).Scan(&stats.AvgMorningEnergy, &stats.AvgCalories, &stats.AvgProtein, &stats.AvgSteps, &stats.TotalUsers, &stats.TotalRecords)
	if err != nil {
		return nil, fmt.Errorf("load usage stats: %w", err)
	}
	return &stats, nil
}
