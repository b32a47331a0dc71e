package flows

import (
	"context"
	"crypto/subtle"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/storage"
)

// adminStart opens the password challenge. The next text turn is
// consumed as the attempt no matter what it contains.
func (f *Flows) adminStart(_ context.Context, t *dialog.Turn) error {
	if f.Elevation.Elevated(t.UserID) {
		t.Reply("You are already signed in. Use /logout to drop admin access.")
		return nil
	}
	t.Reply("Send the admin password.")
	t.Advance(StepAwaitAdminPass, LoginData{})
	return nil
}

// adminPassword checks one attempt against the shared secret. Both
// outcomes end the flow; a failed attempt returns the user to the
// unprivileged surface.
func (f *Flows) adminPassword(_ context.Context, t *dialog.Turn) error {
	attempt := strings.TrimSpace(t.Text)
	if f.AdminPassword != "" &&
		subtle.ConstantTimeCompare([]byte(attempt), []byte(f.AdminPassword)) == 1 {
		f.Elevation.Grant(t.UserID)
		t.Reply("Admin access granted.")
	} else {
		t.Reply("Wrong password.")
	}
	t.Finish()
	return nil
}

func (f *Flows) logout(_ context.Context, t *dialog.Turn) error {
	if !f.Elevation.Elevated(t.UserID) {
		t.Reply("You are not signed in.")
		return nil
	}
	f.Elevation.Revoke(t.UserID)
	t.Reply("Admin access revoked.")
	return nil
}

func (f *Flows) broadcastStart(_ context.Context, t *dialog.Turn) error {
	t.Reply("Send the broadcast text.")
	t.Advance(StepBroadcastText, BroadcastDraft{})
	return nil
}

func (f *Flows) broadcastText(_ context.Context, t *dialog.Turn) error {
	text := strings.TrimSpace(t.Text)
	if text == "" {
		t.Reply("The broadcast cannot be empty.")
		return nil
	}
	t.Replyf("Send \"yes\" to broadcast:\n\n%s", text)
	t.Advance(StepBroadcastConfirm, BroadcastDraft{Text: text})
	return nil
}

func (f *Flows) broadcastConfirm(ctx context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(BroadcastDraft)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /broadcast.")
	}
	if !strings.EqualFold(strings.TrimSpace(t.Text), "yes") {
		t.Reply("Broadcast cancelled.")
		t.Finish()
		return nil
	}
	report, err := f.Broadcast.SendAll(ctx, d.Text, t.UserID)
	if err != nil {
		return err
	}
	t.Replyf("Broadcast done: %d sent, %d failed.", report.Sent, report.Failed)
	t.Finish()
	return nil
}

func (f *Flows) contentCreateStart(_ context.Context, t *dialog.Turn) error {
	t.Reply("What kind of content? workout or nutrition.")
	t.Advance(StepContentKind, ContentDraft{})
	return nil
}

func (f *Flows) contentKind(_ context.Context, t *dialog.Turn) error {
	kind, ok := domain.ParseContentKind(strings.ToLower(strings.TrimSpace(t.Text)))
	if !ok {
		t.Reply("Send workout or nutrition.")
		return nil
	}
	t.Reply("Send a title.")
	t.Advance(StepContentTitle, ContentDraft{Kind: kind})
	return nil
}

func (f *Flows) contentTitle(_ context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(ContentDraft)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /newcontent.")
	}
	title := strings.TrimSpace(t.Text)
	if title == "" {
		t.Reply("The title cannot be empty.")
		return nil
	}
	t.Reply("Send the body text.")
	t.Advance(StepContentBody, ContentDraft{Kind: d.Kind, Title: title})
	return nil
}

func (f *Flows) contentBody(ctx context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(ContentDraft)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /newcontent.")
	}
	body := strings.TrimSpace(t.Text)
	if body == "" {
		t.Reply("The body cannot be empty.")
		return nil
	}
	item, err := f.Content.Create(ctx, d.Kind, d.Title, body, t.UserID)
	if err != nil {
		return err
	}
	t.Replyf("Published %q (%s).", item.Title, item.ID)
	t.Finish()
	return nil
}

func (f *Flows) contentDeleteStart(_ context.Context, t *dialog.Turn) error {
	t.Reply("Send the id of the content item to delete.")
	t.Advance(StepContentDelete, ContentDraft{})
	return nil
}

func (f *Flows) contentDelete(ctx context.Context, t *dialog.Turn) error {
	id, err := uuid.Parse(strings.TrimSpace(t.Text))
	if err != nil {
		t.Reply("That is not a valid id.")
		return nil
	}
	if err := f.Content.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			t.Reply("No content with that id.")
			t.Finish()
			return nil
		}
		return err
	}
	t.Reply("Content deleted.")
	t.Finish()
	return nil
}

const inboxLimit = 20

// inbox lists unread relayed messages, oldest first.
func (f *Flows) inbox(ctx context.Context, t *dialog.Turn) error {
	msgs, err := f.Relay.Unread(ctx)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		t.Reply("Inbox is empty.")
		return nil
	}
	if len(msgs) > inboxLimit {
		msgs = msgs[:inboxLimit]
	}
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(m.ID.String())
		b.WriteString(" [")
		b.WriteString(string(m.Kind))
		b.WriteString("] from ")
		b.WriteString(strconv.FormatInt(m.UserID, 10))
		b.WriteString(": ")
		b.WriteString(truncate(m.Body, 120))
		b.WriteByte('\n')
	}
	t.Reply(strings.TrimRight(b.String(), "\n"))
	return nil
}

func (f *Flows) replyStart(_ context.Context, t *dialog.Turn) error {
	t.Reply("Send the id of the message to answer.")
	t.Advance(StepReplyTarget, ReplyData{})
	return nil
}

func (f *Flows) replyTarget(ctx context.Context, t *dialog.Turn) error {
	id, err := uuid.Parse(strings.TrimSpace(t.Text))
	if err != nil {
		t.Reply("That is not a valid id.")
		return nil
	}
	msg, err := f.Relay.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			t.Reply("No message with that id.")
			t.Finish()
			return nil
		}
		return err
	}
	t.Replyf("Replying to %d. Send your answer.", msg.UserID)
	t.Advance(StepReplyBody, ReplyData{TargetUserID: msg.UserID, MessageID: msg.ID})
	return nil
}

// replyBody delivers the answer and marks the message read. A failed
// send fails the turn without advancing, so the admin can retry.
func (f *Flows) replyBody(ctx context.Context, t *dialog.Turn) error {
	d, ok := t.Data().(ReplyData)
	if !ok {
		return f.abort(t, "Something went wrong. Start again with /reply.")
	}
	body := strings.TrimSpace(t.Text)
	if body == "" {
		t.Reply("The answer cannot be empty.")
		return nil
	}
	if err := f.Notify.SendText(ctx, d.TargetUserID, "Your trainer answered:\n\n"+body); err != nil {
		return err
	}
	if err := f.Relay.MarkRead(ctx, d.MessageID); err != nil {
		return err
	}
	t.Reply("Answer delivered.")
	t.Finish()
	return nil
}

func (f *Flows) roleChangeStart(_ context.Context, t *dialog.Turn) error {
	t.Reply("Send \"<user id> admin\" or \"<user id> user\".")
	t.Advance(StepRoleChange, LoginData{})
	return nil
}

func (f *Flows) roleChange(ctx context.Context, t *dialog.Turn) error {
	fields := strings.Fields(t.Text)
	if len(fields) != 2 {
		t.Reply("Send \"<user id> admin\" or \"<user id> user\".")
		return nil
	}
	userID, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		t.Reply("The user id must be a number.")
		return nil
	}
	role, ok := domain.ParseRole(strings.ToLower(fields[1]))
	if !ok {
		t.Reply("The role must be admin or user.")
		return nil
	}
	if err := f.Users.SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			t.Reply("No user with that id.")
			t.Finish()
			return nil
		}
		return err
	}
	t.Replyf("User %d is now %s.", userID, role)
	t.Finish()
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
