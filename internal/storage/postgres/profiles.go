package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m3rciful/coachbot/internal/domain"
)

type profileRepo struct {
	db *sqlx.DB
}

type profileRow struct {
	ID            uuid.UUID      `db:"id"`
	UserID        int64          `db:"user_id"`
	Name          string         `db:"name"`
	Age           int            `db:"age"`
	WeightKG      float64        `db:"weight_kg"`
	HeightCM      float64        `db:"height_cm"`
	Level         string         `db:"level"`
	Goal          string         `db:"goal"`
	GoalDate      time.Time      `db:"goal_date"`
	Equipment     pq.StringArray `db:"equipment"`
	TimePerDayMin int            `db:"time_per_day_min"`
	ReminderTimes pq.StringArray `db:"reminder_times"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

const profileColumns = `id, user_id, name, age, weight_kg, height_cm, level, goal, goal_date,
	equipment, time_per_day_min, reminder_times, created_at, updated_at`

func (r profileRow) toDomain() domain.Profile {
	return domain.Profile{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		Age:           r.Age,
		WeightKG:      r.WeightKG,
		HeightCM:      r.HeightCM,
		Level:         domain.Level(r.Level),
		Goal:          r.Goal,
		GoalDate:      r.GoalDate,
		Equipment:     []string(r.Equipment),
		TimePerDayMin: r.TimePerDayMin,
		ReminderTimes: []string(r.ReminderTimes),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *profileRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var row profileRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	p := row.toDomain()
	return &p, nil
}

func (r *profileRepo) ByUser(ctx context.Context, userID int64) ([]domain.Profile, error) {
	var rows []profileRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	profiles := make([]domain.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.toDomain())
	}
	return profiles, nil
}

func (r *profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.UserID, p.Name, p.Age, p.WeightKG, p.HeightCM, string(p.Level), p.Goal, p.GoalDate,
		pq.StringArray(p.Equipment), p.TimePerDayMin, pq.StringArray(p.ReminderTimes),
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *profileRepo) Update(ctx context.Context, p *domain.Profile) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET name = $2, age = $3, weight_kg = $4, height_cm = $5, level = $6,
		 goal = $7, goal_date = $8, equipment = $9, time_per_day_min = $10, reminder_times = $11,
		 updated_at = $12
		 WHERE id = $1`,
		p.ID, p.Name, p.Age, p.WeightKG, p.HeightCM, string(p.Level),
		p.Goal, p.GoalDate, pq.StringArray(p.Equipment), p.TimePerDayMin,
		pq.StringArray(p.ReminderTimes), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return requireAffected(res)
}

func (r *profileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return requireAffected(res)
}
