package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/m3rciful/coachbot/core/logger"
	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/storage"
)

// ErrLastProfile rejects deleting the only profile a user has left;
// every user must keep at least one.
var ErrLastProfile = errors.New("service: cannot delete the last profile")

// Profiles owns profile lifecycle and field mutation. Weight changes
// always go through SetWeight so the current value and the append-only
// history never diverge.
type Profiles struct {
	store *storage.Store
}

// NewProfiles constructs the profile service.
func NewProfiles(store *storage.Store) *Profiles {
	return &Profiles{store: store}
}

// Get returns one profile.
func (s *Profiles) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return s.store.Profiles.Get(ctx, id)
}

// ByUser lists a user's profiles.
func (s *Profiles) ByUser(ctx context.Context, userID int64) ([]domain.Profile, error) {
	return s.store.Profiles.ByUser(ctx, userID)
}

// Active resolves the active profile of a user.
func (s *Profiles) Active(ctx context.Context, userID int64) (*domain.Profile, error) {
	u, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.Profiles.Get(ctx, u.ActiveProfileID)
}

// Create adds a profile and makes it the user's active one.
func (s *Profiles) Create(ctx context.Context, userID int64, name string) (*domain.Profile, error) {
	u, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &domain.Profile{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Level:     domain.LevelBeginner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Profiles.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	u.ActiveProfileID = p.ID
	if err := s.store.Users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("activate profile: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCProfiles, slog.LevelInfo, "profile.created",
		slog.Int64("user_id", userID),
		slog.String("profile_id", p.ID.String()),
	)
	return p, nil
}

// Delete removes a profile. Deleting the active profile re-points the
// active reference at a surviving one; deleting the last profile is
// rejected with ErrLastProfile.
func (s *Profiles) Delete(ctx context.Context, userID int64, profileID uuid.UUID) error {
	u, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	profiles, err := s.store.Profiles.ByUser(ctx, userID)
	if err != nil {
		return err
	}
	var target *domain.Profile
	for i := range profiles {
		if profiles[i].ID == profileID {
			target = &profiles[i]
			break
		}
	}
	if target == nil {
		return storage.ErrNotFound
	}
	if len(profiles) == 1 {
		return ErrLastProfile
	}

	if u.ActiveProfileID == profileID {
		for _, p := range profiles {
			if p.ID != profileID {
				u.ActiveProfileID = p.ID
				break
			}
		}
		if err := s.store.Users.Update(ctx, u); err != nil {
			return fmt.Errorf("re-point active profile: %w", err)
		}
	}
	if err := s.store.Profiles.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCProfiles, slog.LevelInfo, "profile.deleted",
		slog.Int64("user_id", userID),
		slog.String("profile_id", profileID.String()),
	)
	return nil
}

// SwitchActive points the user's active reference at one of their own
// profiles.
func (s *Profiles) SwitchActive(ctx context.Context, userID int64, profileID uuid.UUID) error {
	u, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	p, err := s.store.Profiles.Get(ctx, profileID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return storage.ErrNotFound
	}
	u.ActiveProfileID = profileID
	return s.store.Users.Update(ctx, u)
}

// update loads, mutates, stamps, and persists one profile as a single
// logical unit. Concurrent external mutation between the read and the
// write is an accepted race.
func (s *Profiles) update(ctx context.Context, id uuid.UUID, mutate func(*domain.Profile)) (*domain.Profile, error) {
	p, err := s.store.Profiles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(p)
	p.UpdatedAt = time.Now().UTC()
	if err := s.store.Profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// SetName updates the display name.
func (s *Profiles) SetName(ctx context.Context, id uuid.UUID, name string) error {
	_, err := s.update(ctx, id, func(p *domain.Profile) { p.Name = name })
	return err
}

// SetAge updates the age.
func (s *Profiles) SetAge(ctx context.Context, id uuid.UUID, age int) error {
	_, err := s.update(ctx, id, func(p *domain.Profile) { p.Age = age })
	return err
}

// SetWeight updates the current weight and appends exactly one entry to
// the weight history. Every code path that sets weight must come
// through here.
func (s *Profiles) SetWeight(ctx context.Context, id uuid.UUID, kg float64) error {
	p, err := s.update(ctx, id, func(p *domain.Profile) { p.WeightKG = kg })
	if err != nil {
		return err
	}
	entry := &domain.WeightEntry{
		ID:         uuid.New(),
		ProfileID:  p.ID,
		WeightKG:   kg,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.store.Progress.AppendWeight(ctx, entry); err != nil {
		return fmt.Errorf("append weight history: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCProfiles, slog.LevelDebug, "profile.weight_set",
		slog.String("profile_id", id.String()),
		slog.Float64("weight_kg", kg),
	)
	return nil
}

// SetHeight updates the height.
func (s *Profiles) SetHeight(ctx context.Context, id uuid.UUID, cm float64) error {
	_, err := s.update(ctx, id, func(p *domain.Profile) { p.HeightCM = cm })
	return err
}

// SetLevel updates the fitness level.
func (s *Profiles) SetLevel(ctx context.Context, id uuid.UUID, level domain.Level) error {
	_, err := s.update(ctx, id, func(p *domain.Profile) { p.Level = level })
	return err
}

// SetGoal updates the free-text goal.
func (s *Profiles) SetGoal(ctx context.Context, id uuid.UUID, goal string) error {
	_, err := s.update(ctx, id, func(p *domain.Profile) { p.Goal = goal })
	return err
}

// SetGoalDate updates the goal target date.
func (s *Profiles) SetGoalDate(ctx context.Context, id uuid.UUID, date time.Time) error {
	_, err := s.update(ctx, id, func(p *domain.Profile) { p.GoalDate = date })
	return err
}

// SetEquipment replaces the equipment list.
func (s *Profiles) SetEquipment(ctx context.Context, id uuid.UUID, items []string) error {
	_, err := s.update(ctx, id, func(p *domain.Profile) { p.Equipment = items })
	return err
}

// SetTimePerDay updates the daily training-time budget in minutes.
func (s *Profiles) SetTimePerDay(ctx context.Context, id uuid.UUID, minutes int) error {
	_, err := s.update(ctx, id, func(p *domain.Profile) { p.TimePerDayMin = minutes })
	return err
}

// SetReminderTimes replaces the reminder schedule ("HH:MM" tokens).
func (s *Profiles) SetReminderTimes(ctx context.Context, id uuid.UUID, times []string) error {
	_, err := s.update(ctx, id, func(p *domain.Profile) { p.ReminderTimes = times })
	return err
}
