package picker

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/benaskins/optui/internal/item"
)

// startFilter is the list's filter key, sent once candidates arrive.
var startFilter = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}

// Init starts draining the candidate channel.
func (m Model) Init() tea.Cmd {
	return receive(m.source)
}

// receive reads candidates until the producer closes the channel.
func receive(source <-chan item.Section) tea.Cmd {
	return func() tea.Msg {
		var items []list.Item
		for s := range source {
			items = append(items, candidate{section: s})
		}
		return candidatesMsg(items)
	}
}

// Update handles events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case candidatesMsg:
		m.loaded = true
		setCmd := m.list.SetItems(msg)
		// Open on the filter prompt so typing searches straight away.
		var filterCmd tea.Cmd
		m.list, filterCmd = m.list.Update(startFilter)
		return m, tea.Batch(setCmd, filterCmd)

	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.result = Result{Key: KeyCtrlC}
			return m, tea.Quit

		case "enter":
			if !m.loaded {
				return m, nil
			}
			// Confirms straight from the filter prompt as well.
			m.result = Result{Key: KeyEnter}
			if c, ok := m.list.SelectedItem().(candidate); ok {
				s := c.section
				m.result.Selected = &s
			}
			return m, tea.Quit

		case "esc":
			m.result = Result{Key: KeyEsc}
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.list.FilterState() == list.Filtering {
				m.list.CursorUp()
				return m, nil
			}

		case "down", "ctrl+n":
			if m.list.FilterState() == list.Filtering {
				m.list.CursorDown()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
