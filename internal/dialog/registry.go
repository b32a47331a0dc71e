package dialog

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	"github.com/m3rciful/coachbot/core/logger"
)

// StepDef binds a step to its handler. Elevated steps are re-checked
// against the ElevationStore on every turn, not only on entry, because
// a user can lose elevation mid-flow.
type StepDef struct {
	Handler  Handler
	Elevated bool
}

// CommandDef declares a trigger that starts a flow or answers in one
// turn when no session is active. Triggers are matched exactly, in
// registration order; they may be slash commands or menu labels.
type CommandDef struct {
	Trigger     string
	Aliases     []string
	Description string
	Elevated    bool
	Hidden      bool
	Handler     Handler
}

// Registry maps step names to flow handlers and holds the ordered
// command table. Registration happens once during wiring; lookups are
// read-only afterwards, so no locking is needed.
type Registry struct {
	steps    map[Step]StepDef
	commands []CommandDef
	triggers map[string]int
	fallback Handler
	denied   Handler
}

// NewRegistry returns an empty Registry with a default denial handler.
func NewRegistry() *Registry {
	return &Registry{
		steps:    make(map[Step]StepDef),
		triggers: make(map[string]int),
		denied: func(_ context.Context, t *Turn) error {
			t.Reply("Admin only.")
			return nil
		},
	}
}

// RegisterStep adds a flow step. A duplicate step name is a wiring bug
// and is reported as an error.
func (r *Registry) RegisterStep(step Step, def StepDef) error {
	if step == "" || def.Handler == nil {
		return fmt.Errorf("dialog: invalid step registration %q", step)
	}
	if _, exists := r.steps[step]; exists {
		return fmt.Errorf("dialog: step already registered: %s", step)
	}
	r.steps[step] = def
	return nil
}

// MustRegisterStep panics on registration errors; used during wiring
// where a duplicate is fatal misconfiguration.
func (r *Registry) MustRegisterStep(step Step, def StepDef) {
	if err := r.RegisterStep(step, def); err != nil {
		panic(err)
	}
}

// RegisterCommand appends a command to the ordered table. Duplicate
// triggers (including aliases) are a configuration bug.
func (r *Registry) RegisterCommand(def CommandDef) error {
	if def.Trigger == "" || def.Handler == nil {
		return fmt.Errorf("dialog: invalid command registration %q", def.Trigger)
	}
	keys := append([]string{def.Trigger}, def.Aliases...)
	for _, key := range keys {
		if _, exists := r.triggers[key]; exists {
			logger.LogEvent(context.Background(), logger.Dialog, slog.LevelWarn, "register.command.duplicate",
				slog.String("trigger", key),
			)
			return fmt.Errorf("dialog: trigger already registered: %s", key)
		}
	}
	idx := len(r.commands)
	r.commands = append(r.commands, def)
	for _, key := range keys {
		r.triggers[key] = idx
	}
	return nil
}

// MustRegisterCommand panics on registration errors.
func (r *Registry) MustRegisterCommand(def CommandDef) {
	if err := r.RegisterCommand(def); err != nil {
		panic(err)
	}
}

// Step returns the definition registered for a step.
func (r *Registry) Step(step Step) (StepDef, bool) {
	def, ok := r.steps[step]
	return def, ok
}

// Lookup resolves input text to a command by exact trigger or alias
// match. Bare text is also tried with a slash prefix so "help" reaches
// "/help". The first registered match wins.
func (r *Registry) Lookup(text string) (CommandDef, bool) {
	text = strings.TrimSpace(text)
	if idx, ok := r.triggers[text]; ok {
		return r.commands[idx], true
	}
	if !strings.HasPrefix(text, "/") {
		if idx, ok := r.triggers["/"+text]; ok {
			return r.commands[idx], true
		}
	}
	return CommandDef{}, false
}

// Commands returns the command table in registration order.
func (r *Registry) Commands() []CommandDef {
	return r.commands
}

// SetFallback installs the handler for text matching neither an active
// session nor a command.
func (r *Registry) SetFallback(h Handler) {
	r.fallback = h
}

// SetDenied replaces the handler invoked when an unelevated user hits
// an elevated step or command.
func (r *Registry) SetDenied(h Handler) {
	if h != nil {
		r.denied = h
	}
}
