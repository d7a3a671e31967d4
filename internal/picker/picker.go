package picker

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benaskins/optui/internal/item"
)

// Picker runs the chooser full-screen on the terminal.
type Picker struct {
	in  io.Reader
	out io.Writer
}

// New returns a Picker drawing on stderr, keeping stdout free for
// scripted use.
func New() *Picker {
	return &Picker{in: os.Stdin, out: os.Stderr}
}

// Choose blocks until the user confirms a candidate or cancels.
func (p *Picker) Choose(ctx context.Context, candidates <-chan item.Section) (Result, error) {
	prog := tea.NewProgram(NewModel(candidates),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithAltScreen(),
	)
	final, err := prog.Run()
	if err != nil {
		return Result{}, fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("picker returned unexpected model %T", final)
	}
	return m.Result(), nil
}
