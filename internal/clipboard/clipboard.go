// Package clipboard places secrets on the system clipboard and verifies
// they arrived intact.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	atotto "github.com/atotto/clipboard"
)

var (
	// ErrAccess wraps failures to reach the clipboard at all.
	ErrAccess = errors.New("clipboard unavailable")

	// ErrMismatch means the clipboard read back different content than
	// was written: another process replaced it, or the clipboard backend
	// altered it.
	ErrMismatch = errors.New("clipboard content mismatch")
)

// Clipboard reads and writes text.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Place writes content to cb and reads it back.
// It returns an error matching ErrAccess when either call fails and
// ErrMismatch when the read-back differs from content by even one byte.
func Place(cb Clipboard, content string) error {
	if err := cb.Write(content); err != nil {
		return fmt.Errorf("%w: writing: %w", ErrAccess, err)
	}
	got, err := cb.Read()
	if err != nil {
		return fmt.Errorf("%w: reading back: %w", ErrAccess, err)
	}
	if got != content {
		// lengths only; the contents are secrets
		return fmt.Errorf("%w: wrote %d bytes, read back %d", ErrMismatch, len(content), len(got))
	}
	return nil
}

// System is the OS clipboard (pbcopy, xclip/xsel/wl-clipboard, or the
// Windows API, as chosen by atotto/clipboard).
type System struct{}

// NewSystem returns the OS clipboard, or an ErrAccess error when no
// clipboard utility is available.
func NewSystem() (*System, error) {
	if atotto.Unsupported {
		return nil, fmt.Errorf("%w: no clipboard utility found (install xclip, xsel or wl-clipboard)", ErrAccess)
	}
	return &System{}, nil
}

func (System) Write(text string) error { return atotto.WriteAll(text) }

func (System) Read() (string, error) { return atotto.ReadAll() }

// Memory is an in-memory Clipboard for testing.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int

	// WriteErr and ReadErr fail the corresponding call when set.
	WriteErr error
	ReadErr  error

	// Hijack, when set, replaces whatever is written, simulating another
	// process taking over the clipboard.
	Hijack func(written string) string
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if m.Hijack != nil {
		text = m.Hijack(text)
	}
	m.text = text
	return nil
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.text, nil
}

// Writes reports how many times Write was called.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
