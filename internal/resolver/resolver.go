// Package resolver decides where the item collection comes from: the
// on-disk cache or a live walk of the 1Password CLI.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/benaskins/optui/internal/audit"
	"github.com/benaskins/optui/internal/cache"
	"github.com/benaskins/optui/internal/item"
	"github.com/benaskins/optui/internal/op"
)

// Options selects the cache policy for one Resolve call.
// NoCache takes precedence over Refresh.
type Options struct {
	// NoCache fetches live and never reads or writes the cache file.
	NoCache bool
	// Refresh fetches live and overwrites the cache file.
	Refresh bool
	// CachePath is the cache file location.
	CachePath string
	// Vault is the vault selector: "all", "favorites" or a vault name.
	Vault string
}

// Resolver produces the item collection for a run.
type Resolver struct {
	backend op.Backend
	limiter *rate.Limiter
	audit   *audit.Logger
	out     io.Writer
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRateLimit throttles per-item fetches. A nil limiter disables throttling.
func WithRateLimit(l *rate.Limiter) Option {
	return func(r *Resolver) {
		r.limiter = l
	}
}

// WithOutput sets where progress messages for the user are written.
func WithOutput(w io.Writer) Option {
	return func(r *Resolver) {
		r.out = w
	}
}

// WithAudit records cache refreshes to the given audit log.
func WithAudit(l *audit.Logger) Option {
	return func(r *Resolver) {
		r.audit = l
	}
}

// New creates a Resolver fetching through backend.
func New(backend op.Backend, opts ...Option) *Resolver {
	r := &Resolver{
		backend: backend,
		out:     io.Discard,
		logger:  slog.With("component", "resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the items for a run according to opts.
//
// Without NoCache or Refresh the cache is authoritative: it is returned
// as-is when present and is only bootstrapped by a live fetch when the file
// does not exist. Any other cache error is returned without fetching, so a
// misconfigured path or corrupt file is not mistaken for a first run.
func (r *Resolver) Resolve(ctx context.Context, opts Options) ([]item.Item, error) {
	if opts.NoCache {
		fmt.Fprintln(r.out, "Retrieving items from 1Password...")
		return r.Fetch(ctx, opts.Vault)
	}

	if opts.Refresh {
		fmt.Fprintln(r.out, "Retrieving items from 1Password and updating cache...")
		return r.fetchAndCache(ctx, opts)
	}

	items, err := cache.Load(opts.CachePath)
	if err == nil {
		r.logger.Debug("loaded items from cache", "path", opts.CachePath, "items", len(items))
		return items, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		return nil, err
	}

	fmt.Fprintln(r.out, "Cache file not found. Retrieving items and writing to cache.")
	return r.fetchAndCache(ctx, opts)
}

func (r *Resolver) fetchAndCache(ctx context.Context, opts Options) ([]item.Item, error) {
	items, err := r.Fetch(ctx, opts.Vault)
	if err != nil {
		return nil, err
	}
	if err := cache.Write(items, opts.CachePath); err != nil {
		return nil, err
	}
	r.logger.Info("cache updated", "path", opts.CachePath, "items", len(items))

	if err := r.audit.Log(audit.Entry{
		Action: audit.ActionCacheRefresh,
		Vault:  opts.Vault,
		Count:  len(items),
	}); err != nil {
		r.logger.Warn("audit log write failed", "error", err)
	}
	return items, nil
}

// Fetch lists the items for vault and fetches each one in turn.
// A failure to list is fatal. A failure to fetch or parse a single item
// is logged and that item skipped. Cancelling ctx aborts the walk with
// ctx.Err() rather than returning a partial collection.
func (r *Resolver) Fetch(ctx context.Context, vault string) ([]item.Item, error) {
	summaries, err := r.backend.ListSummaries(ctx, vault)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	r.logger.Info("fetching items", "vault", vault, "count", len(summaries))

	items := make([]item.Item, 0, len(summaries))
	for _, s := range summaries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		raw, err := r.backend.GetRecord(ctx, s.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.logger.Warn("failed to get item, skipping", "title", s.Title, "id", s.ID, "error", err)
			continue
		}
		it, err := item.Parse(raw)
		if err != nil {
			r.logger.Warn("failed to parse item, skipping", "title", s.Title, "id", s.ID, "error", err)
			continue
		}
		items = append(items, it)
	}
	return items, nil
}
