package bot

import (
	"errors"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coachbot/core/telegram/callbacks"
	"github.com/m3rciful/coachbot/core/telegram/format"
	tghelpers "github.com/m3rciful/coachbot/core/telegram/helpers"
	"github.com/m3rciful/coachbot/internal/storage"
)

const cbSwitchProfile = "switch_profile"

// switchProfileCallback activates the profile named in the button
// payload.
func (b *Bot) switchProfileCallback(c tele.Context) error {
	id, err := uuid.Parse(callbacks.CallbackPayload(c))
	if err != nil {
		return tghelpers.SendText(c, "That profile button is no longer valid.")
	}

	ctx := tghelpers.BuildContext(c)
	if err := b.profiles.SwitchActive(ctx, c.Sender().ID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, "That profile no longer exists.")
		}
		return err
	}
	p, err := b.profiles.Get(ctx, id)
	if err != nil {
		return err
	}
	// Profile names are user input; escape them before the Markdown send.
	name, err := format.EscapeMarkdown(p.Name, format.MarkdownV1, "")
	if err != nil {
		name = p.Name
	}
	return tghelpers.EditOrSendMD(c, "Profile *"+name+"* is now active.")
}
