package flows

import (
	"github.com/google/uuid"

	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/domain"
)

// Step names. Every live session points at exactly one of these.
const (
	StepOnboardingAge    dialog.Step = "onboarding_age"
	StepOnboardingWeight dialog.Step = "onboarding_weight"
	StepOnboardingHeight dialog.Step = "onboarding_height"

	StepEditPick  dialog.Step = "edit_pick"
	StepEditValue dialog.Step = "edit_value"

	StepProfileName   dialog.Step = "profile_name"
	StepProfileDelete dialog.Step = "profile_delete"
	StepProfileSwitch dialog.Step = "profile_switch"

	StepLogMeal    dialog.Step = "log_meal"
	StepLogWorkout dialog.Step = "log_workout"
	StepLogWeight  dialog.Step = "log_weight"

	StepContactBody dialog.Step = "contact_body"

	StepAwaitAdminPass   dialog.Step = "await_admin_pass"
	StepBroadcastText    dialog.Step = "broadcast_text"
	StepBroadcastConfirm dialog.Step = "broadcast_confirm"
	StepContentKind      dialog.Step = "content_kind"
	StepContentTitle     dialog.Step = "content_title"
	StepContentBody      dialog.Step = "content_body"
	StepContentDelete    dialog.Step = "content_delete"
	StepReplyTarget      dialog.Step = "reply_target"
	StepReplyBody        dialog.Step = "reply_body"
	StepRoleChange       dialog.Step = "role_change"
)

// OnboardingData is carried through the age -> weight -> height chain.
type OnboardingData struct {
	dialog.Payload
	ProfileID uuid.UUID
}

// FieldEditData names the profile and field the editor is changing.
type FieldEditData struct {
	dialog.Payload
	ProfileID uuid.UUID
	Field     string
}

// ProfileActionData is carried by the create/delete/switch profile
// steps.
type ProfileActionData struct {
	dialog.Payload
}

// LogData names the profile a progress entry is being logged against.
type LogData struct {
	dialog.Payload
	ProfileID uuid.UUID
}

// RelayData tags which contact flow the pending text belongs to.
type RelayData struct {
	dialog.Payload
	Kind domain.RelayKind
}

// LoginData marks a pending password attempt.
type LoginData struct {
	dialog.Payload
}

// BroadcastDraft carries the composed text into the confirm step.
type BroadcastDraft struct {
	dialog.Payload
	Text string
}

// ContentDraft accumulates the kind -> title -> body chain.
type ContentDraft struct {
	dialog.Payload
	Kind  domain.ContentKind
	Title string
}

// ReplyData names the relayed message an admin is answering.
type ReplyData struct {
	dialog.Payload
	TargetUserID int64
	MessageID    uuid.UUID
}
