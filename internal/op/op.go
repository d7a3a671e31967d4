// Package op talks to the 1Password CLI.
//
// Every operation is a single blocking `op` invocation. Failures are
// classified so callers can tell a command that ran and exited non-zero
// (ExitError) from one that succeeded but printed something unparseable
// (ParseError) or could not be started at all (LaunchError). Nothing here
// retries.
package op

import (
	"context"
	"fmt"
	"strings"

	"github.com/benaskins/optui/internal/item"
)

// Vault selectors with special meaning. Any other value names a vault.
const (
	SelectorAll       = "all"
	SelectorFavorites = "favorites"
)

// Backend is the subset of the 1Password CLI optui needs.
type Backend interface {
	// ListSummaries lists the items in scope for selector.
	ListSummaries(ctx context.Context, selector string) ([]item.Summary, error)

	// GetRecord returns the raw JSON of one item.
	GetRecord(ctx context.Context, id string) ([]byte, error)

	// ReadSecret resolves an op:// reference to its current value.
	ReadSecret(ctx context.Context, reference string) (string, error)
}

// ListArgs returns the `op` arguments listing items for selector.
func ListArgs(selector string) []string {
	switch selector {
	case SelectorFavorites:
		return []string{"item", "list", "--favorite", "--format", "json"}
	case SelectorAll:
		return []string{"item", "list", "--format", "json"}
	default:
		return []string{"item", "list", "--vault", selector, "--format", "json"}
	}
}

// GetArgs returns the `op` arguments fetching one item.
func GetArgs(id string) []string {
	return []string{"item", "get", id, "--format", "json"}
}

// ReadArgs returns the `op` arguments resolving a secret reference.
func ReadArgs(reference string) []string {
	return []string{"read", "--no-newline", reference}
}

// LaunchError means the op binary could not be started.
type LaunchError struct {
	Bin string
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Bin, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError means op ran and exited with a non-zero status.
// Stderr holds the tail of its diagnostic output.
type ExitError struct {
	Args   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("op %s: exit code %d", strings.Join(redactArgs(e.Args), " "), e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// ParseError means op exited cleanly but its output could not be decoded.
type ParseError struct {
	Args []string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing output of op %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// redactArgs keeps references out of error text; they identify which
// secret was being read.
func redactArgs(args []string) []string {
	if len(args) == 0 || args[0] != "read" {
		return args
	}
	out := make([]string, len(args))
	copy(out, args)
	out[len(out)-1] = "<reference>"
	return out
}
