package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/storage"
)

// Progress records meal and workout logs and reads history.
type Progress struct {
	store *storage.Store
}

// NewProgress constructs the progress service.
func NewProgress(store *storage.Store) *Progress {
	return &Progress{store: store}
}

// LogMeal appends one meal entry for a profile.
func (s *Progress) LogMeal(ctx context.Context, profileID uuid.UUID, text string) error {
	e := &domain.MealEntry{
		ID:        uuid.New(),
		ProfileID: profileID,
		Text:      text,
		LoggedAt:  time.Now().UTC(),
	}
	if err := s.store.Progress.AppendMeal(ctx, e); err != nil {
		return fmt.Errorf("log meal: %w", err)
	}
	return nil
}

// LogWorkout appends one workout entry for a profile.
func (s *Progress) LogWorkout(ctx context.Context, profileID uuid.UUID, text string) error {
	e := &domain.WorkoutEntry{
		ID:        uuid.New(),
		ProfileID: profileID,
		Text:      text,
		LoggedAt:  time.Now().UTC(),
	}
	if err := s.store.Progress.AppendWorkout(ctx, e); err != nil {
		return fmt.Errorf("log workout: %w", err)
	}
	return nil
}

// WeightHistory returns the append-only weight log of a profile in
// chronological order.
func (s *Progress) WeightHistory(ctx context.Context, profileID uuid.UUID) ([]domain.WeightEntry, error) {
	return s.store.Progress.WeightHistory(ctx, profileID)
}

// RecentMeals returns the latest meal entries, newest first.
func (s *Progress) RecentMeals(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.MealEntry, error) {
	return s.store.Progress.Meals(ctx, profileID, limit)
}

// RecentWorkouts returns the latest workout entries, newest first.
func (s *Progress) RecentWorkouts(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.WorkoutEntry, error) {
	return s.store.Progress.Workouts(ctx, profileID, limit)
}
