package bot

import (
	"context"
	"errors"
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Transport sends direct text messages to users outside an inbound
// turn. It backs the broadcast fan-out, admin replies and scheduled
// reminders. The telebot instance is only available once the runtime
// has started, so the transport binds lazily.
type Transport struct {
	mu  sync.RWMutex
	bot *tele.Bot
}

// NewTransport returns an unbound transport. Sends fail until Bind.
func NewTransport() *Transport {
	return &Transport{}
}

// Bind attaches the running bot. Called from the runtime start hook.
func (t *Transport) Bind(bot *tele.Bot) {
	t.mu.Lock()
	t.bot = bot
	t.mu.Unlock()
}

// SendText delivers one message to one user. Failures affect only this
// recipient.
func (t *Transport) SendText(_ context.Context, userID int64, text string) error {
	t.mu.RLock()
	bot := t.bot
	t.mu.RUnlock()
	if bot == nil {
		return errors.New("bot: transport not bound")
	}
	_, err := bot.Send(&tele.User{ID: userID}, text)
	return err
}
