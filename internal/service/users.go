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

// Users manages registration and roles.
type Users struct {
	store *storage.Store
}

// NewUsers constructs the user service.
func NewUsers(store *storage.Store) *Users {
	return &Users{store: store}
}

// Get returns a user by Telegram id.
func (s *Users) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.Users.Get(ctx, id)
}

// List returns every registered user.
func (s *Users) List(ctx context.Context) ([]domain.User, error) {
	return s.store.Users.List(ctx)
}

// Ensure returns the user for a Telegram id, registering them with a
// default active profile on first contact. The reported bool is true
// when the user was just created.
func (s *Users) Ensure(ctx context.Context, id int64, username string) (*domain.User, bool, error) {
	u, err := s.store.Users.Get(ctx, id)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:        uuid.New(),
		UserID:    id,
		Name:      "Main",
		Level:     domain.LevelBeginner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Profiles.Create(ctx, profile); err != nil {
		return nil, false, fmt.Errorf("create default profile: %w", err)
	}

	u = &domain.User{
		ID:              id,
		Username:        username,
		Role:            domain.RoleUser,
		ActiveProfileID: profile.ID,
		CreatedAt:       now,
	}
	if err := s.store.Users.Create(ctx, u); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	logger.LogEvent(ctx, logger.SVCUsers, slog.LevelInfo, "user.registered",
		slog.Int64("user_id", id),
		slog.String("username", logger.SanitizeLimit(username, 64)),
	)
	return u, true, nil
}

// SetRole updates the persisted role of a user. The role gates menu
// visibility only; flow access is controlled by session elevation.
func (s *Users) SetRole(ctx context.Context, id int64, role domain.Role) error {
	u, err := s.store.Users.Get(ctx, id)
	if err != nil {
		return err
	}
	u.Role = role
	if err := s.store.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCUsers, slog.LevelInfo, "user.role_changed",
		slog.Int64("user_id", id),
		slog.String("role", string(role)),
	)
	return nil
}
