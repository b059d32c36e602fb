// Package postgres provides pgx-backed implementations of the domain
// repositories.
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

// UserRepository is the Postgres implementation of domain.UserRepository.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, chat_id, username, first_name, last_name,
    onboarding_completed, onboarding_completed_at,
    timezone, morning_time, evening_time, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.ChatID, &u.Username, &u.FirstName, &u.LastName,
		&u.OnboardingCompleted, &u.OnboardingCompletedAt,
		&u.Timezone, &u.MorningTime, &u.EveningTime, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetOrCreate returns the user for the chat, inserting a bare record on first
// contact. Profile names refresh on every call so renames propagate.
func (r *UserRepository) GetOrCreate(ctx context.Context, chatID int64, username, firstName, lastName string) (*domain.User, error) {
	const query = `
        INSERT INTO users (chat_id, username, first_name, last_name, timezone, morning_time, evening_time, created_at, updated_at)
        VALUES ($1, $2, $3, $4, 'UTC', '08:00', '21:00', NOW(), NOW())
        ON CONFLICT (chat_id) DO UPDATE
            SET username = EXCLUDED.username,
                first_name = EXCLUDED.first_name,
                last_name = EXCLUDED.last_name,
                updated_at = NOW()
        RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, chatID, username, firstName, lastName))
	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE chat_id = $1`, chatID))
}

func (r *UserRepository) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE users
        SET onboarding_completed = $2,
            onboarding_completed_at = $3,
            timezone = $4,
            morning_time = $5,
            evening_time = $6,
            updated_at = NOW()
        WHERE id = $1`,
		user.ID, user.OnboardingCompleted, user.OnboardingCompletedAt,
		user.Timezone, user.MorningTime, user.EveningTime)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListOnboarded(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE onboarding_completed ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list onboarded users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.ChatID, &u.Username, &u.FirstName, &u.LastName,
			&u.OnboardingCompleted, &u.OnboardingCompletedAt,
			&u.Timezone, &u.MorningTime, &u.EveningTime, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// touchTimestamps fills creation metadata when the caller left it zero.
func touchTimestamps(createdAt *time.Time) {
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
