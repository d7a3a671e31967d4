// Package logbuf keeps a bounded tail of a subprocess's diagnostic output.
package logbuf

import (
	"bytes"
	"strings"
	"sync"
)

// Tail is an io.Writer that retains only the last N lines written to it.
// It is safe for concurrent use.
type Tail struct {
	mu      sync.Mutex
	lines   []string
	max     int
	dropped int
	partial bytes.Buffer
}

// NewTail returns a Tail keeping at most n complete lines.
func NewTail(n int) *Tail {
	if n <= 0 {
		n = 1
	}
	return &Tail{max: n}
}

// Write implements io.Writer.
func (t *Tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.partial.Write(p)
	for {
		line, err := t.partial.ReadString('\n')
		if err != nil {
			// incomplete line stays buffered
			t.partial.Reset()
			t.partial.WriteString(line)
			break
		}
		t.push(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

func (t *Tail) push(line string) {
	if len(t.lines) == t.max {
		copy(t.lines, t.lines[1:])
		t.lines = t.lines[:t.max-1]
		t.dropped++
	}
	t.lines = append(t.lines, line)
}

// Lines returns the retained lines, oldest first. An unterminated final
// line is included.
func (t *Tail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, 0, len(t.lines)+1)
	out = append(out, t.lines...)
	if t.partial.Len() > 0 {
		out = append(out, t.partial.String())
	}
	return out
}

// Dropped reports how many lines were discarded to stay within the limit.
func (t *Tail) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// String joins the retained lines with newlines, trimmed of surrounding
// whitespace.
func (t *Tail) String() string {
	return strings.TrimSpace(strings.Join(t.Lines(), "\n"))
}
