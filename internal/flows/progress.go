package flows

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/storage"
)

func (f *Flows) logMealStart(ctx context.Context, t *dialog.Turn) error {
	p, err := f.activeProfileID(ctx, t)
	if err != nil || p == nil {
		return err
	}
	t.Reply("What did you eat?")
	t.Advance(StepLogMeal, LogData{ProfileID: p.ID})
	return nil
}

func (f *Flows) logMeal(ctx context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(LogData)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /meal.")
	}
	text := strings.TrimSpace(t.Text)
	if text == "" {
		t.Reply("Describe the meal in a few words.")
		return nil
	}
	if err := f.Progress.LogMeal(ctx, d.ProfileID, text); err != nil {
		return err
	}
	t.Reply("Meal logged.")
	t.Finish()
	return nil
}

func (f *Flows) logWorkoutStart(ctx context.Context, t *dialog.Turn) error {
	p, err := f.activeProfileID(ctx, t)
	if err != nil || p == nil {
		return err
	}
	t.Reply("What did you train?")
	t.Advance(StepLogWorkout, LogData{ProfileID: p.ID})
	return nil
}

func (f *Flows) logWorkout(ctx context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(LogData)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /workout.")
	}
	text := strings.TrimSpace(t.Text)
	if text == "" {
		t.Reply("Describe the workout in a few words.")
		return nil
	}
	if err := f.Progress.LogWorkout(ctx, d.ProfileID, text); err != nil {
		return err
	}
	t.Reply("Workout logged.")
	t.Finish()
	return nil
}

func (f *Flows) logWeightStart(ctx context.Context, t *dialog.Turn) error {
	p, err := f.activeProfileID(ctx, t)
	if err != nil || p == nil {
		return err
	}
	t.Reply("Send your current weight in kg.")
	t.Advance(StepLogWeight, LogData{ProfileID: p.ID})
	return nil
}

// logWeight records a weight check-in through the same dual-write path
// as every other weight change.
func (f *Flows) logWeight(ctx context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(LogData)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /weight.")
	}
	kg, ok := parsePositiveFloat(t.Text)
	if !ok {
		t.Reply("Send a numeric weight in kg.")
		return nil
	}
	if err := f.Profiles.SetWeight(ctx, d.ProfileID, kg); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			t.Reply("That profile no longer exists.")
			t.Finish()
			return nil
		}
		return err
	}
	t.Reply("Weight logged.")
	t.Finish()
	return nil
}

const historyLimit = 10

// weightHistory prints the latest weight check-ins of the active
// profile.
func (f *Flows) weightHistory(ctx context.Context, t *dialog.Turn) error {
	p, err := f.activeProfileID(ctx, t)
	if err != nil || p == nil {
		return err
	}
	entries, err := f.Progress.WeightHistory(ctx, p.ID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		t.Reply("No weight entries yet. Log one with /weight.")
		return nil
	}
	if len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.RecordedAt.Format(dateLayout))
		b.WriteString(": ")
		b.WriteString(strconv.FormatFloat(e.WeightKG, 'f', 1, 64))
		b.WriteString(" kg\n")
	}
	t.Reply(strings.TrimRight(b.String(), "\n"))
	return nil
}
