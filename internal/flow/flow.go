// Package flow drives one interactive run: present every section to the
// chooser, then fetch the chosen secret fresh from 1Password and place it
// on the clipboard.
//
// The run moves through
//
//	Idle → Populating → AwaitingSelection → Retrieving → Done
//	                                      ↘ Cancelled
//
// Secret values are read at the moment of use and never cached.
package flow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/benaskins/optui/internal/audit"
	"github.com/benaskins/optui/internal/clipboard"
	"github.com/benaskins/optui/internal/item"
	"github.com/benaskins/optui/internal/op"
	"github.com/benaskins/optui/internal/picker"
)

// State is the lifecycle state of a Flow.
type State string

const (
	StateIdle              State = "idle"
	StatePopulating        State = "populating"
	StateAwaitingSelection State = "awaiting_selection"
	StateRetrieving        State = "retrieving"
	StateDone              State = "done"
	StateCancelled         State = "cancelled"
)

// Chooser presents candidates and reports the user's choice.
// It must consume candidates until the channel is closed.
type Chooser interface {
	Choose(ctx context.Context, candidates <-chan item.Section) (picker.Result, error)
}

// Outcome summarises a finished run.
type Outcome struct {
	State State
	// Selected is the chosen section, nil when cancelled.
	Selected *item.Section
	// Copied reports whether a secret was placed on the clipboard.
	Copied bool
}

// Flow runs selection and retrieval once.
type Flow struct {
	backend op.Backend
	chooser Chooser
	clip    clipboard.Clipboard
	audit   *audit.Logger
	out     io.Writer
	logger  *slog.Logger
	state   State
}

// Option configures a Flow.
type Option func(*Flow)

// WithAudit records every retrieval to the given audit log.
func WithAudit(l *audit.Logger) Option {
	return func(f *Flow) {
		f.audit = l
	}
}

// WithOutput sets where confirmation messages for the user are written.
func WithOutput(w io.Writer) Option {
	return func(f *Flow) {
		f.out = w
	}
}

// New creates a Flow.
func New(backend op.Backend, chooser Chooser, clip clipboard.Clipboard, opts ...Option) *Flow {
	f := &Flow{
		backend: backend,
		chooser: chooser,
		clip:    clip,
		out:     io.Discard,
		logger:  slog.With("component", "flow"),
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current lifecycle state.
func (f *Flow) State() State {
	return f.state
}

// Candidates returns every section of items on a channel that already
// holds all of them and is closed, item order then section order.
func Candidates(items []item.Item) <-chan item.Section {
	sections := item.Sections(items)
	ch := make(chan item.Section, len(sections))
	for _, s := range sections {
		ch <- s
	}
	close(ch)
	return ch
}

// Run presents items, waits for a choice and copies the chosen secret.
//
// A whitespace-only secret ends the run in StateDone without touching the
// clipboard. Errors from reading the secret or from the clipboard are
// returned; clipboard errors match clipboard.ErrAccess or
// clipboard.ErrMismatch.
func (f *Flow) Run(ctx context.Context, items []item.Item) (Outcome, error) {
	f.state = StatePopulating
	candidates := Candidates(items)

	f.state = StateAwaitingSelection
	res, err := f.chooser.Choose(ctx, candidates)
	if err != nil {
		return Outcome{State: f.state}, err
	}

	if res.Key != picker.KeyEnter || res.Selected == nil {
		f.logger.Debug("selection cancelled", "key", res.Key)
		f.state = StateCancelled
		return Outcome{State: f.state}, nil
	}

	f.state = StateRetrieving
	selected := *res.Selected
	f.logger.Info("selected", "title", selected.Title)

	secret, err := f.backend.ReadSecret(ctx, selected.Reference)
	if err != nil {
		f.record(audit.ActionSecretCopy, selected, err)
		return Outcome{State: f.state, Selected: &selected}, fmt.Errorf("reading secret for %q: %w", selected.Title, err)
	}

	if strings.TrimSpace(secret) == "" {
		f.logger.Info("secret is empty, nothing to copy", "title", selected.Title)
		f.record(audit.ActionSecretEmpty, selected, nil)
		fmt.Fprintln(f.out, "Secret is empty, nothing copied.")
		f.state = StateDone
		return Outcome{State: f.state, Selected: &selected}, nil
	}

	if err := clipboard.Place(f.clip, secret); err != nil {
		f.record(audit.ActionSecretCopy, selected, err)
		return Outcome{State: f.state, Selected: &selected}, err
	}

	f.record(audit.ActionSecretCopy, selected, nil)
	fmt.Fprintln(f.out, "Secret copied to clipboard!")
	f.state = StateDone
	return Outcome{State: f.state, Selected: &selected, Copied: true}, nil
}

func (f *Flow) record(action audit.Action, s item.Section, cause error) {
	entry := audit.Entry{
		Action:    action,
		Title:     s.Title,
		Reference: s.Reference,
	}
	if cause != nil {
		entry.Error = cause.Error()
	}
	if err := f.audit.Log(entry); err != nil {
		f.logger.Warn("audit log write failed", "error", err)
	}
}
