package dialog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/m3rciful/coachbot/core/logger"
)

// ErrUnknownStep reports a live session pointing at an unregistered
// step. This is a programming error, never user input.
var ErrUnknownStep = errors.New("dialog: session step has no registered handler")

const lockStripes = 64

// Router dispatches inbound text turns. An active session always wins
// over command matching: flows are modal, so mid-flow text that happens
// to equal a menu label stays with the flow.
type Router struct {
	sessions SessionStore
	elevated ElevationStore
	registry *Registry

	// Per-user striped locks serialize turns for the same user so a
	// read-modify-write of one session never races with itself.
	locks [lockStripes]sync.Mutex
}

// NewRouter wires the router onto its stores and registry. All three
// are injected; the router owns no ambient state.
func NewRouter(sessions SessionStore, elevated ElevationStore, registry *Registry) *Router {
	return &Router{
		sessions: sessions,
		elevated: elevated,
		registry: registry,
	}
}

func (r *Router) lock(userID int64) *sync.Mutex {
	idx := uint64(userID) % lockStripes
	return &r.locks[idx]
}

// HandleText processes a free-form text turn: active session first,
// then the ordered command table, then the fallback. The fallback
// leaves any session untouched.
func (r *Router) HandleText(ctx context.Context, userID int64, text string) (*Turn, error) {
	mu := r.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	turn := &Turn{UserID: userID, Text: text}

	if sess, ok := r.sessions.Get(userID); ok {
		turn.Session = &sess
		return r.dispatchStep(ctx, turn, sess)
	}

	if cmd, ok := r.registry.Lookup(text); ok {
		return r.runCommand(ctx, turn, cmd)
	}

	if fb := r.registry.fallback; fb != nil {
		if err := fb(ctx, turn); err != nil {
			return turn, err
		}
	}
	return turn, nil
}

// HandleCommand dispatches a trigger directly, bypassing any active
// session. The transport routes native slash-command updates here, so
// /cancel and /start stay reachable mid-flow.
func (r *Router) HandleCommand(ctx context.Context, userID int64, trigger string) (*Turn, error) {
	mu := r.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	turn := &Turn{UserID: userID, Text: trigger}
	if sess, ok := r.sessions.Get(userID); ok {
		turn.Session = &sess
	}

	cmd, ok := r.registry.Lookup(trigger)
	if !ok {
		return turn, fmt.Errorf("dialog: unregistered command trigger %q", trigger)
	}
	return r.runCommand(ctx, turn, cmd)
}

// Cancel drops the user's active session, if any, and reports whether
// one existed.
func (r *Router) Cancel(userID int64) bool {
	mu := r.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	_, had := r.sessions.Get(userID)
	if had {
		r.sessions.Clear(userID)
	}
	return had
}

func (r *Router) dispatchStep(ctx context.Context, turn *Turn, sess Session) (*Turn, error) {
	def, found := r.registry.Step(sess.Step)
	if !found {
		// Drop the broken session so the user is not stuck forever.
		r.sessions.Clear(sess.UserID)
		logger.LogEvent(ctx, logger.Dialog, slog.LevelError, "step.unregistered",
			slog.Int64("user_id", sess.UserID),
			slog.String("step", string(sess.Step)),
		)
		return turn, fmt.Errorf("%w: %s", ErrUnknownStep, sess.Step)
	}

	if def.Elevated && !r.elevated.Elevated(sess.UserID) {
		// Denied turns leave the session as-is; the handler decides
		// nothing here, so no transition can be recorded.
		return turn, r.registry.denied(ctx, turn)
	}

	start := time.Now()
	err := def.Handler(ctx, turn)
	r.logTurn(ctx, "step", string(sess.Step), start, err)
	if err != nil {
		return turn, err
	}
	r.applyTransition(turn)
	return turn, nil
}

func (r *Router) runCommand(ctx context.Context, turn *Turn, cmd CommandDef) (*Turn, error) {
	if cmd.Elevated && !r.elevated.Elevated(turn.UserID) {
		return turn, r.registry.denied(ctx, turn)
	}
	start := time.Now()
	err := cmd.Handler(ctx, turn)
	r.logTurn(ctx, "command", cmd.Trigger, start, err)
	if err != nil {
		return turn, err
	}
	r.applyTransition(turn)
	return turn, nil
}

// applyTransition commits the outcome a successful handler recorded.
// Handlers that recorded nothing self-loop on the current step.
func (r *Router) applyTransition(turn *Turn) {
	next := turn.next
	if next == nil {
		return
	}
	if next.clear {
		r.sessions.Clear(turn.UserID)
		return
	}
	r.sessions.Set(turn.UserID, next.step, next.data)
}

func (r *Router) logTurn(ctx context.Context, kind, name string, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.String(kind, name),
		slog.Duration("duration", logger.Took(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
		logger.LogEvent(ctx, logger.Dialog, slog.LevelError, "turn.handled", attrs...)
		return
	}
	logger.LogEvent(ctx, logger.Dialog, slog.LevelDebug, "turn.handled", attrs...)
}
