package flows

import (
	"context"
	"errors"
	"strings"

	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/storage"
)

// Editable fields and their prompts, in menu order.
var editFields = []struct {
	name   string
	prompt string
}{
	{"name", "Send the new profile name."},
	{"age", "Send your age."},
	{"weight", "Send your weight in kg."},
	{"height", "Send your height in cm."},
	{"level", "Send your level: beginner, intermediate or advanced."},
	{"goal", "Describe your goal."},
	{"goaldate", "Send the goal date as YYYY-MM-DD."},
	{"equipment", "List your equipment, comma separated."},
	{"time", "How many minutes per day can you train?"},
	{"reminders", "Send reminder times as HH:MM, comma separated."},
}

func editPrompt(field string) (string, bool) {
	for _, ef := range editFields {
		if ef.name == field {
			return ef.prompt, true
		}
	}
	return "", false
}

// editStart opens the field editor against the active profile.
func (f *Flows) editStart(ctx context.Context, t *dialog.Turn) error {
	p, err := f.activeProfileID(ctx, t)
	if err != nil || p == nil {
		return err
	}
	names := make([]string, 0, len(editFields))
	for _, ef := range editFields {
		names = append(names, ef.name)
	}
	t.Replyf("Editing %q. Which field? %s", p.Name, strings.Join(names, ", "))
	t.Advance(StepEditPick, FieldEditData{ProfileID: p.ID})
	return nil
}

func (f *Flows) editPick(_ context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(FieldEditData)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /edit.")
	}
	field := strings.ToLower(strings.TrimSpace(t.Text))
	prompt, known := editPrompt(field)
	if !known {
		t.Reply("Unknown field. Pick one from the list.")
		return nil
	}
	t.Reply(prompt)
	t.Advance(StepEditValue, FieldEditData{ProfileID: d.ProfileID, Field: field})
	return nil
}

// editValue applies one validated field update and ends the flow.
// Weight goes through the same dual-write path the onboarding chain
// uses.
func (f *Flows) editValue(ctx context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(FieldEditData)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /edit.")
	}

	var err error
	switch d.Field {
	case "name":
		name := strings.TrimSpace(t.Text)
		if name == "" {
			t.Reply("The name cannot be empty.")
			return nil
		}
		err = f.Profiles.SetName(ctx, d.ProfileID, name)
	case "age":
		age, ok := parsePositiveInt(t.Text)
		if !ok {
			t.Reply("Send a numeric age.")
			return nil
		}
		err = f.Profiles.SetAge(ctx, d.ProfileID, age)
	case "weight":
		kg, ok := parsePositiveFloat(t.Text)
		if !ok {
			t.Reply("Send a numeric weight in kg.")
			return nil
		}
		err = f.Profiles.SetWeight(ctx, d.ProfileID, kg)
	case "height":
		cm, ok := parsePositiveFloat(t.Text)
		if !ok {
			t.Reply("Send a numeric height in cm.")
			return nil
		}
		err = f.Profiles.SetHeight(ctx, d.ProfileID, cm)
	case "level":
		level, ok := domain.ParseLevel(strings.ToLower(strings.TrimSpace(t.Text)))
		if !ok {
			t.Reply("Send beginner, intermediate or advanced.")
			return nil
		}
		err = f.Profiles.SetLevel(ctx, d.ProfileID, level)
	case "goal":
		goal := strings.TrimSpace(t.Text)
		if goal == "" {
			t.Reply("Describe your goal in a sentence.")
			return nil
		}
		err = f.Profiles.SetGoal(ctx, d.ProfileID, goal)
	case "goaldate":
		date, ok := parseDate(t.Text)
		if !ok {
			t.Reply("Send the date as YYYY-MM-DD.")
			return nil
		}
		err = f.Profiles.SetGoalDate(ctx, d.ProfileID, date)
	case "equipment":
		items := splitList(t.Text)
		if len(items) == 0 {
			t.Reply("List at least one item, comma separated.")
			return nil
		}
		err = f.Profiles.SetEquipment(ctx, d.ProfileID, items)
	case "time":
		minutes, ok := parsePositiveInt(t.Text)
		if !ok {
			t.Reply("Send a number of minutes.")
			return nil
		}
		err = f.Profiles.SetTimePerDay(ctx, d.ProfileID, minutes)
	case "reminders":
		times, ok := parseClockList(t.Text)
		if !ok {
			t.Reply("Send times as HH:MM, comma separated.")
			return nil
		}
		err = f.Profiles.SetReminderTimes(ctx, d.ProfileID, times)
	default:
		return f.abort(t, "Something went wrong. Start again with /edit.")
	}

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			t.Reply("That profile no longer exists.")
			t.Finish()
			return nil
		}
		return err
	}
	t.Reply("Saved.")
	t.Finish()
	return nil
}
