package dialog

import (
	"context"
	"fmt"
)

// Handler processes one text turn of a flow or command. A handler must
// validate before mutating, perform at most one coherent mutation, and
// record the outcome on the Turn. Returning an error means the turn
// failed: no recorded transition is applied and the session stays on
// the current step.
type Handler func(ctx context.Context, t *Turn) error

type transition struct {
	step  Step
	data  StepData
	clear bool
}

// Turn is one inbound text event being processed for a user. Handlers
// read the input and session from it and record replies plus the
// resulting state transition.
type Turn struct {
	UserID int64
	Text   string

	// Session is the active session at dispatch time, nil when the
	// turn was routed as a command or fallback.
	Session *Session

	replies []string
	next    *transition
}

// Reply queues an outbound message for the user.
func (t *Turn) Reply(text string) {
	t.replies = append(t.replies, text)
}

// Replyf queues a formatted outbound message.
func (t *Turn) Replyf(format string, args ...any) {
	t.replies = append(t.replies, fmt.Sprintf(format, args...))
}

// Replies returns the queued outbound messages in order.
func (t *Turn) Replies() []string {
	return t.replies
}

// Advance records a transition to the given step, replacing any session
// the user had. Applied by the router only when the handler returns nil.
func (t *Turn) Advance(step Step, data StepData) {
	t.next = &transition{step: step, data: data}
}

// Finish records flow completion: the session is cleared when the
// handler returns nil. Without Advance or Finish the session is left
// untouched, which is how validation failures self-loop on a step.
func (t *Turn) Finish() {
	t.next = &transition{clear: true}
}

// Data returns the typed data of the active session, or nil.
func (t *Turn) Data() StepData {
	if t.Session == nil {
		return nil
	}
	return t.Session.Data
}
