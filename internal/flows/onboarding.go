package flows

import (
	"context"

	"github.com/google/uuid"

	"github.com/m3rciful/coachbot/internal/dialog"
)

// start registers the sender on first contact and (re)enters the
// onboarding chain for the active profile. Re-sending /start restarts
// the chain from the top.
func (f *Flows) start(ctx context.Context, t *dialog.Turn) error {
	u, created, err := f.Users.Ensure(ctx, t.UserID, "")
	if err != nil {
		return err
	}
	if created {
		t.Reply("Welcome! Let's set up your profile.")
	} else {
		t.Reply("Welcome back! Let's update your profile.")
	}
	t.Reply("Send your age.")
	t.Advance(StepOnboardingAge, OnboardingData{ProfileID: u.ActiveProfileID})
	return nil
}

func onboardingProfile(t *dialog.Turn) uuid.UUID {
	if d, ok := t.Data().(OnboardingData); ok {
		return d.ProfileID
	}
	return uuid.Nil
}

func (f *Flows) onboardingAge(ctx context.Context, t *dialog.Turn) error {
	age, ok := parsePositiveInt(t.Text)
	if !ok {
		t.Reply("Send a numeric age.")
		return nil
	}
	profileID := onboardingProfile(t)
	if err := f.Profiles.SetAge(ctx, profileID, age); err != nil {
		return err
	}
	t.Reply("Send your weight in kg.")
	t.Advance(StepOnboardingWeight, OnboardingData{ProfileID: profileID})
	return nil
}

func (f *Flows) onboardingWeight(ctx context.Context, t *dialog.Turn) error {
	kg, ok := parsePositiveFloat(t.Text)
	if !ok {
		t.Reply("Send a numeric weight in kg.")
		return nil
	}
	profileID := onboardingProfile(t)
	if err := f.Profiles.SetWeight(ctx, profileID, kg); err != nil {
		return err
	}
	t.Reply("Send your height in cm.")
	t.Advance(StepOnboardingHeight, OnboardingData{ProfileID: profileID})
	return nil
}

func (f *Flows) onboardingHeight(ctx context.Context, t *dialog.Turn) error {
	cm, ok := parsePositiveFloat(t.Text)
	if !ok {
		t.Reply("Send a numeric height in cm.")
		return nil
	}
	if err := f.Profiles.SetHeight(ctx, onboardingProfile(t), cm); err != nil {
		return err
	}
	t.Reply("All set! Your profile is ready. Try /workouts or /help.")
	t.Finish()
	return nil
}
