// Package picker is the interactive chooser: a bubbletea program showing
// candidate section titles in a fuzzy-filterable list.
//
// The secret references travel with each candidate but are never rendered.
package picker

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"

	"github.com/benaskins/optui/internal/item"
)

// Key is the key that ended the selection.
type Key string

const (
	KeyEnter Key = "enter"
	KeyEsc   Key = "esc"
	KeyCtrlC Key = "ctrl+c"
)

// Result is what the user did: the terminating key and, for KeyEnter,
// the highlighted candidate (nil when the filter matched nothing).
type Result struct {
	Key      Key
	Selected *item.Section
}

// candidate adapts a Section to list.DefaultItem.
type candidate struct {
	section item.Section
}

func (c candidate) FilterValue() string { return c.section.Title }
func (c candidate) Title() string       { return c.section.Title }
func (c candidate) Description() string { return "" }

// candidatesMsg carries every candidate once the source channel is closed.
type candidatesMsg []list.Item

var copyKey = key.NewBinding(
	key.WithKeys("enter"),
	key.WithHelp("enter", "copy secret"),
)

// Model holds the picker state.
type Model struct {
	list   list.Model
	source <-chan item.Section
	loaded bool
	result Result
}

// NewModel returns a picker reading its candidates from source.
// source must be closed by the producer once the last candidate is sent.
func NewModel(source <-chan item.Section) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 80, 24)
	l.Title = "1Password"
	l.Styles.Title = titleStyle
	l.SetStatusBarItemName("secret", "secrets")
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{copyKey} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{copyKey} }

	return Model{list: l, source: source}
}

// Result returns how the picker ended. It is only meaningful once the
// program has quit.
func (m Model) Result() Result {
	return m.result
}
