package service

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/m3rciful/coachbot/core/logger"
	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/storage"
)

// Relay stores user text addressed to the human trainer and tracks the
// unread queue administrators work through.
type Relay struct {
	store *storage.Store
}

// NewRelay constructs the relay service.
func NewRelay(store *storage.Store) *Relay {
	return &Relay{store: store}
}

// Record stores one immutable relayed message.
func (s *Relay) Record(ctx context.Context, userID int64, kind domain.RelayKind, body string) (*domain.RelayedMessage, error) {
	m := &domain.RelayedMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Relay.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("record relayed message: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCRelay, slog.LevelInfo, "relay.recorded",
		slog.Int64("user_id", userID),
		slog.String("kind", string(kind)),
	)
	return m, nil
}

// Get returns one relayed message.
func (s *Relay) Get(ctx context.Context, id uuid.UUID) (*domain.RelayedMessage, error) {
	return s.store.Relay.Get(ctx, id)
}

// Unread lists messages not yet reviewed, oldest first.
func (s *Relay) Unread(ctx context.Context) ([]domain.RelayedMessage, error) {
	return s.store.Relay.Unread(ctx)
}

// MarkRead flags one message as reviewed.
func (s *Relay) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.store.Relay.MarkRead(ctx, id)
}
