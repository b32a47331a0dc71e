package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/coachbot/internal/domain"
)

type relayRepo struct {
	db *sqlx.DB
}

func (r *relayRepo) Create(ctx context.Context, m *domain.RelayedMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO relayed_messages (id, user_id, kind, body, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.UserID, string(m.Kind), m.Body, m.Read, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert relayed message: %w", err)
	}
	return nil
}

func (r *relayRepo) Get(ctx context.Context, id uuid.UUID) (*domain.RelayedMessage, error) {
	var m domain.RelayedMessage
	err := r.db.GetContext(ctx, &m,
		`SELECT id, user_id, kind, body, read, created_at FROM relayed_messages WHERE id = $1`, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &m, nil
}

func (r *relayRepo) Unread(ctx context.Context) ([]domain.RelayedMessage, error) {
	var msgs []domain.RelayedMessage
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT id, user_id, kind, body, read, created_at FROM relayed_messages
		 WHERE NOT read ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list unread: %w", err)
	}
	return msgs, nil
}

func (r *relayRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE relayed_messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return requireAffected(res)
}
