// Package postgres implements the storage contracts on PostgreSQL via
// sqlx. Schema is managed by the migrations under migrations/.
package postgres

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/coachbot/internal/storage"
)

// New wires every repository onto the shared connection pool.
func New(db *sqlx.DB) *storage.Store {
	return &storage.Store{
		Users:    &userRepo{db: db},
		Profiles: &profileRepo{db: db},
		Progress: &progressRepo{db: db},
		Content:  &contentRepo{db: db},
		Relay:    &relayRepo{db: db},
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

// requireAffected converts a zero-row UPDATE/DELETE into ErrNotFound so
// services can treat missing rows uniformly.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
