// Package bot adapts the transport-agnostic dialog engine to Telegram.
// It translates telebot updates into dialog turns, delivers the queued
// replies, and wires menus, callbacks and the outbound transport.
package bot

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/coachbot/core/telegram"
	"github.com/m3rciful/coachbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/coachbot/core/telegram/helpers"
	tgrouter "github.com/m3rciful/coachbot/core/telegram/router"
	"github.com/m3rciful/coachbot/internal/config"
	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/observability"
	"github.com/m3rciful/coachbot/internal/service"
)

// Bot glues the dialog router to the telebot runtime.
type Bot struct {
	cfg      *config.AppConfig
	dialog   *dialog.Router
	sessions dialog.SessionStore
	users    *service.Users
	profiles *service.Profiles
	metrics  *observability.Metrics

	registry *tg.Registry
}

// Options collects the collaborators the adapter needs.
type Options struct {
	Config    *config.AppConfig
	Dialog    *dialog.Router
	DialogReg *dialog.Registry
	Sessions  dialog.SessionStore
	Users     *service.Users
	Profiles  *service.Profiles
	Metrics   *observability.Metrics
}

// New builds the adapter and populates the transport-level registry
// from the dialog command table.
func New(opts Options) *Bot {
	b := &Bot{
		cfg:      opts.Config,
		dialog:   opts.Dialog,
		sessions: opts.Sessions,
		users:    opts.Users,
		profiles: opts.Profiles,
		metrics:  opts.Metrics,
		registry: tg.NewRegistry(),
	}

	for _, def := range opts.DialogReg.Commands() {
		desc := def.Description
		if desc == "" {
			desc = "Administration"
		}
		b.registry.RegisterCommand(def.Trigger, commands.Command{
			Handler:     b.commandHandler(def.Trigger),
			Description: desc,
			Hidden:      def.Hidden,
			Aliases:     def.Aliases,
		})
	}
	b.registry.SetTextFallback(b.textHandler)
	_ = b.registry.RegisterCallback(cbSwitchProfile, b.switchProfileCallback)

	return b
}

// Registry exposes the transport registry for command menu publishing.
func (b *Bot) Registry() *tg.Registry {
	return b.registry
}

// Routes builds the telebot routes: one per slash command, the shared
// text/document router, and the callback router. Slash commands route
// straight to the dialog command table so /cancel and /start stay
// reachable while a flow is active.
func (b *Bot) Routes() []tg.Route {
	routes := tgrouter.CommandRoutes(b.registry, tgrouter.CommandRouteOptions{})
	routes = append(routes, tgrouter.TextRoutes(b.fsm(), b.registry, tgrouter.TextOptions{})...)
	routes = append(routes, tgrouter.CallbackRoute(b.registry, tgrouter.CallbackOptions{}))
	return routes
}

// Middlewares returns the shared chain plus user registration.
func (b *Bot) Middlewares() []tg.Middleware {
	mws := tg.DefaultMiddlewares(b.cfg.CoreConfig(), nil)
	mws = append(mws, tg.Middleware{Name: "ensure_user", Use: b.ensureUserMiddleware})
	return mws
}

// ensureUserMiddleware registers the sender on first contact so every
// handler can rely on the user row existing.
func (b *Bot) ensureUserMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if sender := c.Sender(); sender != nil {
			ctx := tghelpers.BuildContext(c)
			if _, _, err := b.users.Ensure(ctx, sender.ID, sender.Username); err != nil {
				return err
			}
		}
		return next(c)
	}
}

func (b *Bot) commandHandler(trigger string) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		ctx := tghelpers.BuildContext(c)
		turn, err := b.dialog.HandleCommand(ctx, c.Sender().ID, trigger)
		b.metrics.ObserveUpdate("command", time.Since(start))
		return b.deliver(c, trigger, turn, err)
	}
}

// textHandler backs the transport text fallback. The dialog router
// resolves the turn: active session first, then command labels, then
// the dialog fallback.
func (b *Bot) textHandler(c tele.Context) error {
	start := time.Now()
	ctx := tghelpers.BuildContext(c)
	turn, err := b.dialog.HandleText(ctx, c.Sender().ID, c.Text())
	b.metrics.ObserveUpdate("text", time.Since(start))
	return b.deliver(c, "text", turn, err)
}
