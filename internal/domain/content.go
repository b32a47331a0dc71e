package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind classifies guidance material.
type ContentKind string

const (
	ContentWorkout   ContentKind = "workout"
	ContentNutrition ContentKind = "nutrition"
)

// ParseContentKind maps user input to a ContentKind.
func ParseContentKind(s string) (ContentKind, bool) {
	switch ContentKind(s) {
	case ContentWorkout, ContentNutrition:
		return ContentKind(s), true
	}
	return "", false
}

// ContentItem is a piece of workout or nutrition guidance authored by
// an administrator.
type ContentItem struct {
	ID        uuid.UUID   `db:"id"`
	Kind      ContentKind `db:"kind"`
	Title     string      `db:"title"`
	Body      string      `db:"body"`
	CreatedBy int64       `db:"created_by"`
	CreatedAt time.Time   `db:"created_at"`
}
