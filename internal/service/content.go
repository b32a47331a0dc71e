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

// Content manages workout and nutrition guidance material.
type Content struct {
	store *storage.Store
}

// NewContent constructs the content service.
func NewContent(store *storage.Store) *Content {
	return &Content{store: store}
}

// Create stores a new content item authored by an administrator.
func (s *Content) Create(ctx context.Context, kind domain.ContentKind, title, body string, createdBy int64) (*domain.ContentItem, error) {
	item := &domain.ContentItem{
		ID:        uuid.New(),
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Content.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCContent, slog.LevelInfo, "content.created",
		slog.String("content_id", item.ID.String()),
		slog.String("kind", string(kind)),
	)
	return item, nil
}

// Get returns one content item.
func (s *Content) Get(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	return s.store.Content.Get(ctx, id)
}

// ListByKind returns items of one kind, newest first.
func (s *Content) ListByKind(ctx context.Context, kind domain.ContentKind) ([]domain.ContentItem, error) {
	return s.store.Content.ListByKind(ctx, kind)
}

// Delete removes one content item.
func (s *Content) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Content.Delete(ctx, id); err != nil {
		return err
	}
	logger.LogEvent(ctx, logger.SVCContent, slog.LevelInfo, "content.deleted",
		slog.String("content_id", id.String()),
	)
	return nil
}
