package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m3rciful/coachbot/core/bootstrap"
	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/storage"
)

// devSeeders returns the seeders run against the in-memory store so a
// development bot has content to browse.
func devSeeders(store *storage.Store) []bootstrap.Seeder {
	return []bootstrap.Seeder{
		bootstrap.SeederFunc(func(ctx context.Context, _ bootstrap.Storage) error {
			now := time.Now().UTC()
			items := []domain.ContentItem{
				{
					ID:        uuid.New(),
					Kind:      domain.ContentWorkout,
					Title:     "Bodyweight basics",
					Body:      "3 rounds: 10 squats, 10 push-ups, 30s plank. Rest 90s between rounds.",
					CreatedAt: now,
				},
				{
					ID:        uuid.New(),
					Kind:      domain.ContentWorkout,
					Title:     "20 minute dumbbell full body",
					Body:      "4 rounds: 12 goblet squats, 10 rows per side, 8 overhead presses.",
					CreatedAt: now,
				},
				{
					ID:        uuid.New(),
					Kind:      domain.ContentNutrition,
					Title:     "Protein on a budget",
					Body:      "Eggs, lentils, cottage cheese and canned fish cover most needs cheaply.",
					CreatedAt: now,
				},
			}
			for i := range items {
				if err := store.Content.Create(ctx, &items[i]); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}
