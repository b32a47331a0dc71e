// Package storage defines the persistence contracts consumed by the
// services. Implementations must provide read-your-writes consistency
// within a single call sequence; cross-call races are the caller's
// concern.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/m3rciful/coachbot/internal/domain"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("storage: not found")

// Users persists registered users.
type Users interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

// Profiles persists fitness profiles.
type Profiles interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ByUser(ctx context.Context, userID int64) ([]domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) error
	Update(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Progress persists append-only progress records.
type Progress interface {
	AppendWeight(ctx context.Context, e *domain.WeightEntry) error
	WeightHistory(ctx context.Context, profileID uuid.UUID) ([]domain.WeightEntry, error)
	AppendMeal(ctx context.Context, e *domain.MealEntry) error
	Meals(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.MealEntry, error)
	AppendWorkout(ctx context.Context, e *domain.WorkoutEntry) error
	Workouts(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.WorkoutEntry, error)
}

// Content persists guidance material.
type Content interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error)
	Create(ctx context.Context, item *domain.ContentItem) error
	ListByKind(ctx context.Context, kind domain.ContentKind) ([]domain.ContentItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Relay persists messages forwarded to the trainer inbox.
type Relay interface {
	Create(ctx context.Context, m *domain.RelayedMessage) error
	Get(ctx context.Context, id uuid.UUID) (*domain.RelayedMessage, error)
	Unread(ctx context.Context) ([]domain.RelayedMessage, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// Store bundles all repositories behind one injection point.
type Store struct {
	Users    Users
	Profiles Profiles
	Progress Progress
	Content  Content
	Relay    Relay
}
