package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/coachbot/internal/domain"
)

type progressRepo struct {
	db *sqlx.DB
}

func (r *progressRepo) AppendWeight(ctx context.Context, e *domain.WeightEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO weight_history (id, profile_id, weight_kg, recorded_at)
		 VALUES ($1, $2, $3, $4)`,
		e.ID, e.ProfileID, e.WeightKG, e.RecordedAt)
	if err != nil {
		return fmt.Errorf("append weight entry: %w", err)
	}
	return nil
}

func (r *progressRepo) WeightHistory(ctx context.Context, profileID uuid.UUID) ([]domain.WeightEntry, error) {
	var entries []domain.WeightEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, profile_id, weight_kg, recorded_at FROM weight_history
		 WHERE profile_id = $1 ORDER BY recorded_at`, profileID)
	if err != nil {
		return nil, fmt.Errorf("weight history: %w", err)
	}
	return entries, nil
}

func (r *progressRepo) AppendMeal(ctx context.Context, e *domain.MealEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meal_log (id, profile_id, text, logged_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.ProfileID, e.Text, e.LoggedAt)
	if err != nil {
		return fmt.Errorf("append meal entry: %w", err)
	}
	return nil
}

func (r *progressRepo) Meals(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.MealEntry, error) {
	var entries []domain.MealEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, profile_id, text, logged_at FROM meal_log
		 WHERE profile_id = $1 ORDER BY logged_at DESC LIMIT $2`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return entries, nil
}

func (r *progressRepo) AppendWorkout(ctx context.Context, e *domain.WorkoutEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workout_log (id, profile_id, text, logged_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.ProfileID, e.Text, e.LoggedAt)
	if err != nil {
		return fmt.Errorf("append workout entry: %w", err)
	}
	return nil
}

func (r *progressRepo) Workouts(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.WorkoutEntry, error) {
	var entries []domain.WorkoutEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, profile_id, text, logged_at FROM workout_log
		 WHERE profile_id = $1 ORDER BY logged_at DESC LIMIT $2`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return entries, nil
}
