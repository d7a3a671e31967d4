package picker

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/benaskins/optui/internal/item"
)

func source(sections ...item.Section) <-chan item.Section {
	ch := make(chan item.Section, len(sections))
	for _, s := range sections {
		ch <- s
	}
	close(ch)
	return ch
}

// loadedModel returns a model that has drained its candidates.
func loadedModel(t *testing.T, sections ...item.Section) Model {
	t.Helper()
	m := NewModel(source(sections...))
	msg := m.Init()()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(k)
	return updated.(Model), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

var sections = []item.Section{
	{Title: "GitHub", Reference: "op://Private/GitHub/password"},
	{Title: "Bank", Reference: "op://Private/Bank/password"},
	{Title: "Recovery", Reference: "op://Private/GitHub/Recovery/password"},
}

func TestInitDrainsUntilClosed(t *testing.T) {
	m := NewModel(source(sections...))
	msg, ok := m.Init()().(candidatesMsg)
	if !ok {
		t.Fatalf("expected candidatesMsg")
	}
	if len(msg) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(msg))
	}
	if msg[0].FilterValue() != "GitHub" || msg[2].FilterValue() != "Recovery" {
		t.Errorf("candidate order not preserved")
	}
}

func TestEnterSelectsHighlighted(t *testing.T) {
	m := loadedModel(t, sections...)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Fatal("expected quit after enter")
	}
	res := m.Result()
	if res.Key != KeyEnter {
		t.Errorf("Key = %q, want enter", res.Key)
	}
	if res.Selected == nil || res.Selected.Reference != "op://Private/GitHub/password" {
		t.Errorf("Selected = %+v", res.Selected)
	}
}

func TestCursorMovesSelection(t *testing.T) {
	m := loadedModel(t, sections...)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	if res.Selected == nil || res.Selected.Title != "Bank" {
		t.Errorf("Selected = %+v, want Bank", res.Selected)
	}
}

func TestOpensOnFilterPrompt(t *testing.T) {
	m := loadedModel(t, sections...)
	if got := m.list.FilterState(); got != list.Filtering {
		t.Fatalf("FilterState = %v, want filtering", got)
	}
}

func TestTypingGoesToFilter(t *testing.T) {
	m := loadedModel(t, sections...)

	// j and k are list navigation keys outside the filter prompt.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})

	if got := m.list.FilterValue(); got != "jk" {
		t.Errorf("FilterValue = %q, want jk", got)
	}
	if m.list.Index() != 0 {
		t.Errorf("cursor moved to %d while typing", m.list.Index())
	}
}

func TestEscCancels(t *testing.T) {
	m := loadedModel(t, sections...)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !isQuit(cmd) {
		t.Fatal("expected quit after esc")
	}
	res := m.Result()
	if res.Key != KeyEsc || res.Selected != nil {
		t.Errorf("Result = %+v, want esc with no selection", res)
	}
}

func TestCtrlCCancels(t *testing.T) {
	m := loadedModel(t, sections...)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Fatal("expected quit after ctrl+c")
	}
	if res := m.Result(); res.Key != KeyCtrlC || res.Selected != nil {
		t.Errorf("Result = %+v, want ctrl+c with no selection", res)
	}
}

func TestEnterOnEmptyListSelectsNothing(t *testing.T) {
	m := loadedModel(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Fatal("expected quit after enter")
	}
	res := m.Result()
	if res.Key != KeyEnter || res.Selected != nil {
		t.Errorf("Result = %+v, want enter with no selection", res)
	}
}

func TestEnterIgnoredWhileLoading(t *testing.T) {
	m := NewModel(make(chan item.Section))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command while loading")
	}
	if m.Result().Key != "" {
		t.Errorf("unexpected result %+v", m.Result())
	}
}

func TestViewNeverShowsReferences(t *testing.T) {
	m := loadedModel(t, sections...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := updated.(Model).View()

	if !strings.Contains(view, "GitHub") {
		t.Errorf("expected titles in view:\n%s", view)
	}
	if strings.Contains(view, "op://") {
		t.Errorf("reference rendered in view:\n%s", view)
	}
}
