package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/coachbot/internal/domain"
)

type contentRepo struct {
	db *sqlx.DB
}

func (r *contentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.db.GetContext(ctx, &item,
		`SELECT id, kind, title, body, created_by, created_at FROM content_items WHERE id = $1`, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &item, nil
}

func (r *contentRepo) Create(ctx context.Context, item *domain.ContentItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO content_items (id, kind, title, body, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, string(item.Kind), item.Title, item.Body, item.CreatedBy, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert content item: %w", err)
	}
	return nil
}

func (r *contentRepo) ListByKind(ctx context.Context, kind domain.ContentKind) ([]domain.ContentItem, error) {
	var items []domain.ContentItem
	err := r.db.SelectContext(ctx, &items,
		`SELECT id, kind, title, body, created_by, created_at FROM content_items
		 WHERE kind = $1 ORDER BY created_at DESC`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

func (r *contentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM content_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}
	return requireAffected(res)
}
