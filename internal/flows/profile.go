package flows

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/service"
	"github.com/m3rciful/coachbot/internal/storage"
)

// showProfile prints the active profile.
func (f *Flows) showProfile(ctx context.Context, t *dialog.Turn) error {
	p, err := f.activeProfileID(ctx, t)
	if err != nil || p == nil {
		return err
	}
	var b strings.Builder
	b.WriteString("Profile: " + p.Name + "\n")
	if p.Age > 0 {
		b.WriteString("Age: " + strconv.Itoa(p.Age) + "\n")
	}
	if p.WeightKG > 0 {
		b.WriteString("Weight: " + strconv.FormatFloat(p.WeightKG, 'f', 1, 64) + " kg\n")
	}
	if p.HeightCM > 0 {
		b.WriteString("Height: " + strconv.FormatFloat(p.HeightCM, 'f', 0, 64) + " cm\n")
	}
	b.WriteString("Level: " + string(p.Level) + "\n")
	if p.Goal != "" {
		b.WriteString("Goal: " + p.Goal)
		if !p.GoalDate.IsZero() {
			b.WriteString(" (by " + p.GoalDate.Format(dateLayout) + ")")
		}
		b.WriteByte('\n')
	}
	if len(p.Equipment) > 0 {
		b.WriteString("Equipment: " + strings.Join(p.Equipment, ", ") + "\n")
	}
	if p.TimePerDayMin > 0 {
		b.WriteString("Time per day: " + strconv.Itoa(p.TimePerDayMin) + " min\n")
	}
	if len(p.ReminderTimes) > 0 {
		b.WriteString("Reminders: " + strings.Join(p.ReminderTimes, ", ") + "\n")
	}
	t.Reply(strings.TrimRight(b.String(), "\n"))
	return nil
}

// listProfiles prints every profile, marking the active one.
func (f *Flows) listProfiles(ctx context.Context, t *dialog.Turn) error {
	u, err := f.Users.Get(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			t.Reply("You are not registered yet. Send /start first.")
			return nil
		}
		return err
	}
	profiles, err := f.Profiles.ByUser(ctx, t.UserID)
	if err != nil {
		return err
	}
	var b strings.Builder
	for i, p := range profiles {
		b.WriteString(strconv.Itoa(i+1) + ". " + p.Name)
		if p.ID == u.ActiveProfileID {
			b.WriteString(" (active)")
		}
		b.WriteByte('\n')
	}
	t.Reply(strings.TrimRight(b.String(), "\n"))
	return nil
}

func (f *Flows) profileCreateStart(_ context.Context, t *dialog.Turn) error {
	t.Reply("Send a name for the new profile.")
	t.Advance(StepProfileName, ProfileActionData{})
	return nil
}

func (f *Flows) profileName(ctx context.Context, t *dialog.Turn) error {
	name := strings.TrimSpace(t.Text)
	if name == "" {
		t.Reply("The name cannot be empty.")
		return nil
	}
	p, err := f.Profiles.Create(ctx, t.UserID, name)
	if err != nil {
		return err
	}
	t.Replyf("Profile %q created and made active.", p.Name)
	t.Finish()
	return nil
}

func (f *Flows) profileDeleteStart(ctx context.Context, t *dialog.Turn) error {
	if err := f.listProfiles(ctx, t); err != nil {
		return err
	}
	t.Reply("Which profile should be deleted? Send its number or name.")
	t.Advance(StepProfileDelete, ProfileActionData{})
	return nil
}

func (f *Flows) profileDelete(ctx context.Context, t *dialog.Turn) error {
	p, err := f.pickProfile(ctx, t)
	if err != nil || p == nil {
		return err
	}
	switch err := f.Profiles.Delete(ctx, t.UserID, p.ID); {
	case errors.Is(err, service.ErrLastProfile):
		t.Reply("You cannot delete your only profile.")
		t.Finish()
		return nil
	case errors.Is(err, storage.ErrNotFound):
		t.Reply("That profile no longer exists.")
		t.Finish()
		return nil
	case err != nil:
		return err
	}
	t.Replyf("Profile %q deleted.", p.Name)
	t.Finish()
	return nil
}

func (f *Flows) profileSwitchStart(ctx context.Context, t *dialog.Turn) error {
	if err := f.listProfiles(ctx, t); err != nil {
		return err
	}
	t.Reply("Which profile should be active? Send its number or name.")
	t.Advance(StepProfileSwitch, ProfileActionData{})
	return nil
}

func (f *Flows) profileSwitch(ctx context.Context, t *dialog.Turn) error {
	p, err := f.pickProfile(ctx, t)
	if err != nil || p == nil {
		return err
	}
	if err := f.Profiles.SwitchActive(ctx, t.UserID, p.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			t.Reply("That profile no longer exists.")
			t.Finish()
			return nil
		}
		return err
	}
	t.Replyf("Profile %q is now active.", p.Name)
	t.Finish()
	return nil
}

// pickProfile matches the turn's text against the sender's profiles by
// 1-based list position or case-insensitive name. A miss re-prompts on
// the same step.
func (f *Flows) pickProfile(ctx context.Context, t *dialog.Turn) (*domain.Profile, error) {
	profiles, err := f.Profiles.ByUser(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	input := strings.TrimSpace(t.Text)
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(profiles) {
			t.Reply("No profile with that number. Try again.")
			return nil, nil
		}
		return &profiles[n-1], nil
	}
	for i := range profiles {
		if strings.EqualFold(profiles[i].Name, input) {
			return &profiles[i], nil
		}
	}
	t.Reply("No profile with that name. Try again.")
	return nil, nil
}
