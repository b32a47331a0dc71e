package domain

import (
	"time"

	"github.com/google/uuid"
)

// Level is the self-reported fitness level of a profile.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ParseLevel maps user input to a Level, reporting whether it is valid.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), true
	}
	return "", false
}

// Profile holds the training parameters for one fitness persona of a
// user. A user may keep several profiles; exactly one is active at a
// time and acts as the implicit subject of most flows.
type Profile struct {
	ID            uuid.UUID `db:"id"`
	UserID        int64     `db:"user_id"`
	Name          string    `db:"name"`
	Age           int       `db:"age"`
	WeightKG      float64   `db:"weight_kg"`
	HeightCM      float64   `db:"height_cm"`
	Level         Level     `db:"level"`
	Goal          string    `db:"goal"`
	GoalDate      time.Time `db:"goal_date"`
	Equipment     []string  `db:"equipment"`
	TimePerDayMin int       `db:"time_per_day_min"`
	ReminderTimes []string  `db:"reminder_times"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// WeightEntry is one append-only point of a profile's weight history.
// Entries are never updated or deleted; every successful weight change
// produces exactly one of these alongside the current-value update.
type WeightEntry struct {
	ID         uuid.UUID `db:"id"`
	ProfileID  uuid.UUID `db:"profile_id"`
	WeightKG   float64   `db:"weight_kg"`
	RecordedAt time.Time `db:"recorded_at"`
}

// MealEntry is one logged meal for a profile.
type MealEntry struct {
	ID        uuid.UUID `db:"id"`
	ProfileID uuid.UUID `db:"profile_id"`
	Text      string    `db:"text"`
	LoggedAt  time.Time `db:"logged_at"`
}

// WorkoutEntry is one logged workout for a profile.
type WorkoutEntry struct {
	ID        uuid.UUID `db:"id"`
	ProfileID uuid.UUID `db:"profile_id"`
	Text      string    `db:"text"`
	LoggedAt  time.Time `db:"logged_at"`
}
