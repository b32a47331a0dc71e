package flows

import (
	"context"
	"strings"

	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/domain"
)

// contactStart builds the opener for one of the trainer-contact flows.
// All four share the same single collecting step; the kind travels in
// the session data.
func (f *Flows) contactStart(kind domain.RelayKind, prompt string) dialog.Handler {
	return func(_ context.Context, t *dialog.Turn) error {
		t.Reply(prompt)
		t.Advance(StepContactBody, RelayData{Kind: kind})
		return nil
	}
}

func (f *Flows) contactBody(ctx context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(RelayData)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /contact.")
	}
	body := strings.TrimSpace(t.Text)
	if body == "" {
		t.Reply("Please write a few words.")
		return nil
	}
	if _, err := f.Relay.Record(ctx, t.UserID, d.Kind, body); err != nil {
		return err
	}
	t.Reply("Passed on to your trainer. Thank you!")
	t.Finish()
	return nil
}
