package op

import (
	"context"
	"fmt"
	"sync"

	"github.com/benaskins/optui/internal/item"
)

// MemoryBackend is an in-memory Backend for testing.
// Records and secrets are canned; errors can be injected per call.
type MemoryBackend struct {
	mu        sync.Mutex
	summaries map[string][]item.Summary
	records   map[string][]byte
	secrets   map[string]string

	// ListErr, GetErrs and ReadErr override the corresponding call.
	ListErr error
	GetErrs map[string]error
	ReadErr error

	listCalls int
	getCalls  int
	readCalls int
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		summaries: make(map[string][]item.Summary),
		records:   make(map[string][]byte),
		secrets:   make(map[string]string),
		GetErrs:   make(map[string]error),
	}
}

// AddRecord registers raw record JSON under id and lists it for selector.
func (b *MemoryBackend) AddRecord(selector, id, title, raw string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.summaries[selector] = append(b.summaries[selector], item.Summary{ID: id, Title: title})
	b.records[id] = []byte(raw)
}

// SetSecret sets the value a reference resolves to.
func (b *MemoryBackend) SetSecret(reference, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.secrets[reference] = value
}

func (b *MemoryBackend) ListSummaries(ctx context.Context, selector string) ([]item.Summary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listCalls++
	if b.ListErr != nil {
		return nil, b.ListErr
	}
	out := make([]item.Summary, len(b.summaries[selector]))
	copy(out, b.summaries[selector])
	return out, nil
}

func (b *MemoryBackend) GetRecord(ctx context.Context, id string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getCalls++
	if err := b.GetErrs[id]; err != nil {
		return nil, err
	}
	raw, ok := b.records[id]
	if !ok {
		return nil, &ExitError{Args: GetArgs(id), Code: 1, Stderr: fmt.Sprintf("[ERROR] %q isn't an item", id)}
	}
	return raw, nil
}

func (b *MemoryBackend) ReadSecret(ctx context.Context, reference string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readCalls++
	if b.ReadErr != nil {
		return "", b.ReadErr
	}
	val, ok := b.secrets[reference]
	if !ok {
		return "", &ExitError{Args: ReadArgs(reference), Code: 1, Stderr: "[ERROR] could not read secret"}
	}
	return val, nil
}

// Calls reports how many list, get and read calls were made.
func (b *MemoryBackend) Calls() (list, get, read int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls, b.getCalls, b.readCalls
}
