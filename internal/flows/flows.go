package flows

import (
	"context"
	"errors"
	"strings"

	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/service"
	"github.com/m3rciful/coachbot/internal/storage"
)

// Flows bundles the services every handler needs. One instance is
// wired into a dialog.Registry at startup.
type Flows struct {
	Users     *service.Users
	Profiles  *service.Profiles
	Progress  *service.Progress
	Content   *service.Content
	Relay     *service.Relay
	Broadcast *service.Broadcast

	// Notify sends direct messages outside the current turn, used by
	// the admin reply flow.
	Notify service.Transport

	Elevation dialog.ElevationStore

	// AdminPassword is the single shared secret of the privilege gate.
	AdminPassword string
}

// Register wires every step and command into the registry. Command
// registration order is dispatch order.
func (f *Flows) Register(reg *dialog.Registry) {
	// Onboarding chain.
	reg.MustRegisterStep(StepOnboardingAge, dialog.StepDef{Handler: f.onboardingAge})
	reg.MustRegisterStep(StepOnboardingWeight, dialog.StepDef{Handler: f.onboardingWeight})
	reg.MustRegisterStep(StepOnboardingHeight, dialog.StepDef{Handler: f.onboardingHeight})

	// Field editor.
	reg.MustRegisterStep(StepEditPick, dialog.StepDef{Handler: f.editPick})
	reg.MustRegisterStep(StepEditValue, dialog.StepDef{Handler: f.editValue})

	// Profile management.
	reg.MustRegisterStep(StepProfileName, dialog.StepDef{Handler: f.profileName})
	reg.MustRegisterStep(StepProfileDelete, dialog.StepDef{Handler: f.profileDelete})
	reg.MustRegisterStep(StepProfileSwitch, dialog.StepDef{Handler: f.profileSwitch})

	// Progress logging.
	reg.MustRegisterStep(StepLogMeal, dialog.StepDef{Handler: f.logMeal})
	reg.MustRegisterStep(StepLogWorkout, dialog.StepDef{Handler: f.logWorkout})
	reg.MustRegisterStep(StepLogWeight, dialog.StepDef{Handler: f.logWeight})

	// Trainer contact.
	reg.MustRegisterStep(StepContactBody, dialog.StepDef{Handler: f.contactBody})

	// Privilege gate and admin flows. The password step itself is not
	// elevated; everything past it is and gets re-checked every turn.
	reg.MustRegisterStep(StepAwaitAdminPass, dialog.StepDef{Handler: f.adminPassword})
	reg.MustRegisterStep(StepBroadcastText, dialog.StepDef{Handler: f.broadcastText, Elevated: true})
	reg.MustRegisterStep(StepBroadcastConfirm, dialog.StepDef{Handler: f.broadcastConfirm, Elevated: true})
	reg.MustRegisterStep(StepContentKind, dialog.StepDef{Handler: f.contentKind, Elevated: true})
	reg.MustRegisterStep(StepContentTitle, dialog.StepDef{Handler: f.contentTitle, Elevated: true})
	reg.MustRegisterStep(StepContentBody, dialog.StepDef{Handler: f.contentBody, Elevated: true})
	reg.MustRegisterStep(StepContentDelete, dialog.StepDef{Handler: f.contentDelete, Elevated: true})
	reg.MustRegisterStep(StepReplyTarget, dialog.StepDef{Handler: f.replyTarget, Elevated: true})
	reg.MustRegisterStep(StepReplyBody, dialog.StepDef{Handler: f.replyBody, Elevated: true})
	reg.MustRegisterStep(StepRoleChange, dialog.StepDef{Handler: f.roleChange, Elevated: true})

	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/start",
		Description: "Register and set up your profile",
		Handler:     f.start,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/cancel",
		Description: "Abort the current dialogue",
		Handler:     f.cancel,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/me",
		Aliases:     []string{"My profile"},
		Description: "Show your active profile",
		Handler:     f.showProfile,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/edit",
		Aliases:     []string{"Edit profile"},
		Description: "Edit a profile field",
		Handler:     f.editStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/profiles",
		Aliases:     []string{"My profiles"},
		Description: "List your profiles",
		Handler:     f.listProfiles,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/newprofile",
		Description: "Create another profile",
		Handler:     f.profileCreateStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/delprofile",
		Description: "Delete a profile",
		Handler:     f.profileDeleteStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/switchprofile",
		Description: "Change the active profile",
		Handler:     f.profileSwitchStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/meal",
		Aliases:     []string{"Log meal"},
		Description: "Log a meal",
		Handler:     f.logMealStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/workout",
		Aliases:     []string{"Log workout"},
		Description: "Log a workout",
		Handler:     f.logWorkoutStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/weight",
		Aliases:     []string{"Log weight"},
		Description: "Log your current weight",
		Handler:     f.logWeightStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/history",
		Description: "Show your weight history",
		Handler:     f.weightHistory,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/workouts",
		Aliases:     []string{"Workouts"},
		Description: "Browse workout guides",
		Handler:     f.listContent(domain.ContentWorkout),
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/nutrition",
		Aliases:     []string{"Nutrition"},
		Description: "Browse nutrition guides",
		Handler:     f.listContent(domain.ContentNutrition),
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/contact",
		Aliases:     []string{"Contact trainer"},
		Description: "Message your trainer",
		Handler:     f.contactStart(domain.RelayMessage, "Write your message for the trainer."),
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/feedback",
		Description: "Leave feedback",
		Handler:     f.contactStart(domain.RelayFeedback, "What would you like us to know?"),
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/bug",
		Description: "Report a problem",
		Handler:     f.contactStart(domain.RelayBug, "Describe the problem."),
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/privacy",
		Description: "Submit a privacy request",
		Handler:     f.contactStart(domain.RelayPrivacy, "Describe your privacy request."),
	})

	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger: "/admin",
		Hidden:  true,
		Handler: f.adminStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger: "/logout",
		Hidden:  true,
		Handler: f.logout,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:  "/broadcast",
		Hidden:   true,
		Elevated: true,
		Handler:  f.broadcastStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:  "/newcontent",
		Hidden:   true,
		Elevated: true,
		Handler:  f.contentCreateStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:  "/delcontent",
		Hidden:   true,
		Elevated: true,
		Handler:  f.contentDeleteStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:  "/inbox",
		Hidden:   true,
		Elevated: true,
		Handler:  f.inbox,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:  "/reply",
		Hidden:   true,
		Elevated: true,
		Handler:  f.replyStart,
	})
	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:  "/setrole",
		Hidden:   true,
		Elevated: true,
		Handler:  f.roleChangeStart,
	})

	reg.MustRegisterCommand(dialog.CommandDef{
		Trigger:     "/help",
		Description: "List available commands",
		Handler:     f.help(reg),
	})

	reg.SetFallback(func(_ context.Context, t *dialog.Turn) error {
		t.Reply("I did not understand that. Try /help.")
		return nil
	})
}

// cancel drops whatever flow is active. It is routed as a native slash
// command so it stays reachable mid-flow.
func (f *Flows) cancel(_ context.Context, t *dialog.Turn) error {
	if t.Session == nil {
		t.Reply("Nothing to cancel.")
		return nil
	}
	t.Finish()
	t.Reply("Cancelled.")
	return nil
}

func (f *Flows) help(reg *dialog.Registry) dialog.Handler {
	return func(_ context.Context, t *dialog.Turn) error {
		var b strings.Builder
		for _, cmd := range reg.Commands() {
			if cmd.Hidden {
				continue
			}
			b.WriteString(cmd.Trigger)
			if cmd.Description != "" {
				b.WriteString(" - ")
				b.WriteString(cmd.Description)
			}
			b.WriteByte('\n')
		}
		t.Reply(strings.TrimRight(b.String(), "\n"))
		return nil
	}
}

// abort ends a flow whose carried data is missing or stale. The user
// gets a short message and a clean session instead of an internal
// error.
func (f *Flows) abort(t *dialog.Turn, msg string) error {
	t.Reply(msg)
	t.Finish()
	return nil
}

// activeProfileID resolves the sender's active profile for flows that
// do not carry one in their step data.
func (f *Flows) activeProfileID(ctx context.Context, t *dialog.Turn) (*domain.Profile, error) {
	p, err := f.Profiles.Active(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			t.Reply("You are not registered yet. Send /start first.")
			t.Finish()
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}
