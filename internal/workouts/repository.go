package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	SaveBundle(ctx context.Context, records []Record) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]Summary, error)
	ExerciseIDsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]string, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) SaveBundle(ctx context.Context, records []Record) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO generated_workouts
			(id, user_id, name, sequence, duration_minutes, muscle_groups, source, used_fallback, explanation, exercises, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, rec := range records {
		batch.Queue(query,
			rec.ID, rec.UserID, rec.Name, rec.Sequence, rec.DurationMinutes,
			rec.MuscleGroups, rec.Source, rec.UsedFallback, rec.Explanation,
			rec.Exercises, rec.CreatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("inserting generated workout: %w", err)
		}
	}
	return nil
}

func (r *postgresRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]Summary, error) {
	query := `
		SELECT name, muscle_groups, created_at
		FROM generated_workouts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent workouts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Name, &s.MuscleGroups, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ExerciseIDsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT ex->>'exerciseId'
		FROM generated_workouts,
		     jsonb_array_elements(exercises) AS ex
		WHERE user_id = $1
		  AND created_at >= $2
		  AND ex->>'exerciseId' IS NOT NULL`

	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("listing recent exercise ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning exercise id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
