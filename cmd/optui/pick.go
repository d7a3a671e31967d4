package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/benaskins/optui/internal/clipboard"
	"github.com/benaskins/optui/internal/flow"
	"github.com/benaskins/optui/internal/op"
	"github.com/benaskins/optui/internal/picker"
	"github.com/benaskins/optui/internal/resolver"
)

var (
	refreshCache bool
	noCache      bool
	vault        string
)

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&refreshCache, "refresh-cache", "r", false, "Retrieve items from 1Password and update the cache file")
	f.BoolVar(&noCache, "no-cache", false, "Do not load items from or write items to the cache file")
	f.StringVar(&vault, "vault", op.SelectorAll, "Vault name, `favorites`, or `all`")
	rootCmd.MarkFlagsMutuallyExclusive("refresh-cache", "no-cache")
}

func runPick(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("optui needs an interactive terminal")
	}

	cachePath, err := resolveCachePath(args)
	if err != nil {
		return err
	}

	selector := vault
	if !cmd.Flags().Changed("vault") && cfg.Vault != "" {
		selector = cfg.Vault
	}

	// Fail before the picker opens rather than after a secret is chosen.
	clip, err := clipboard.NewSystem()
	if err != nil {
		return err
	}

	auditLog, err := openAudit()
	if err != nil {
		return err
	}
	defer auditLog.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := op.NewCLI(resolveOpPath())

	var limiter *rate.Limiter
	if d := cfg.FetchInterval.Duration; d > 0 {
		limiter = rate.NewLimiter(rate.Every(d), 1)
	}

	r := resolver.New(backend,
		resolver.WithRateLimit(limiter),
		resolver.WithOutput(os.Stderr),
		resolver.WithAudit(auditLog),
	)
	items, err := r.Resolve(ctx, resolver.Options{
		NoCache:   noCache,
		Refresh:   refreshCache,
		CachePath: cachePath,
		Vault:     selector,
	})
	if err != nil {
		return err
	}

	f := flow.New(backend, picker.New(), clip,
		flow.WithAudit(auditLog),
		flow.WithOutput(os.Stdout),
	)
	if _, err := f.Run(ctx, items); err != nil {
		if errors.Is(err, clipboard.ErrMismatch) {
			return fmt.Errorf("%w (another program may be watching or rewriting the clipboard)", err)
		}
		return err
	}
	return nil
}
