package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "optui [cache-path]",
	Short: "Fuzzy-find a 1Password secret and copy it to the clipboard",
	Long: `optui lists the password fields of your 1Password items, lets you fuzzy-search
them by title and copies the chosen secret to the clipboard without showing it.
Start typing to filter, move with the arrow keys, press enter to copy and esc
to cancel.

Items are cached (titles and op:// references only, never secret values) so
later runs start instantly. Use --refresh-cache after adding items, or
--no-cache to bypass the cache entirely.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runPick,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("optui failed", "error", err)
		os.Exit(1)
	}
}
