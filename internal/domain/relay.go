package domain

import (
	"time"

	"github.com/google/uuid"
)

// RelayKind tags inbound user text destined for a human trainer.
type RelayKind string

const (
	RelayMessage  RelayKind = "message"
	RelayFeedback RelayKind = "feedback"
	RelayBug      RelayKind = "bug"
	RelayPrivacy  RelayKind = "privacy"
)

// RelayedMessage is an immutable record of user text forwarded to the
// trainer inbox. Only the read flag mutates after creation.
type RelayedMessage struct {
	ID        uuid.UUID `db:"id"`
	UserID    int64     `db:"user_id"`
	Kind      RelayKind `db:"kind"`
	Body      string    `db:"body"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}
