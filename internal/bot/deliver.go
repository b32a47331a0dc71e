package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/coachbot/core/telegram/helpers"
	"github.com/m3rciful/coachbot/core/telegram/keyboard"
	tgrouter "github.com/m3rciful/coachbot/core/telegram/router"
	"github.com/m3rciful/coachbot/internal/dialog"
)

// fsmAdapter exposes the dialog session store and router in the shape
// the shared text router expects.
type fsmAdapter struct{ b *Bot }

func (a fsmAdapter) InProgress(userID int64) bool {
	_, ok := a.b.sessions.Get(userID)
	return ok
}

func (a fsmAdapter) ManagerHandler(c tele.Context) error {
	return a.b.textHandler(c)
}

func (b *Bot) fsm() tgrouter.FSM {
	return fsmAdapter{b: b}
}

// deliver sends the replies a turn queued. A handler error surfaces a
// short apology to the user and propagates for middleware logging.
func (b *Bot) deliver(c tele.Context, trigger string, turn *dialog.Turn, err error) error {
	if err != nil {
		_ = tghelpers.SendText(c, "Something went wrong. Please try again.")
		return err
	}
	replies := turn.Replies()
	markup := b.markupFor(c, trigger)
	for i, text := range replies {
		var sendErr error
		if markup != nil && i == len(replies)-1 {
			sendErr = tghelpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: markup})
		} else {
			sendErr = tghelpers.SendText(c, text)
		}
		if sendErr != nil {
			return sendErr
		}
	}
	return nil
}

// markupFor attaches keyboards to selected command replies: the main
// menu after /start and per-profile switch buttons after /profiles.
func (b *Bot) markupFor(c tele.Context, trigger string) *tele.ReplyMarkup {
	switch trigger {
	case "/start":
		return mainMenu()
	case "/profiles":
		return b.profileButtons(c)
	}
	return nil
}

func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{"My profile", "Edit profile"},
		[]string{"Log meal", "Log workout", "Log weight"},
		[]string{"Workouts", "Nutrition"},
		[]string{"Contact trainer"},
	)
}

func (b *Bot) profileButtons(c tele.Context) *tele.ReplyMarkup {
	ctx := tghelpers.BuildContext(c)
	profiles, err := b.profiles.ByUser(ctx, c.Sender().ID)
	if err != nil || len(profiles) < 2 {
		return nil
	}
	btns := make([]keyboard.InlineBtn, 0, len(profiles))
	for _, p := range profiles {
		btns = append(btns, keyboard.InlineBtn{
			Text:   p.Name,
			Unique: cbSwitchProfile,
			Data:   p.ID.String(),
		})
	}
	return keyboard.InlineButtonsNPerRow(btns, 2)
}
