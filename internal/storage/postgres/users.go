package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/coachbot/internal/domain"
)

type userRepo struct {
	db *sqlx.DB
}

func (r *userRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, username, role, active_profile_id, created_at FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, role, active_profile_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Username, string(u.Role), u.ActiveProfileID, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = $2, role = $3, active_profile_id = $4 WHERE id = $1`,
		u.ID, u.Username, string(u.Role), u.ActiveProfileID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res)
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT id, username, role, active_profile_id, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
