package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benaskins/optui/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the item cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path [cache-path]",
	Short: "Print the cache file location",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveCachePath(args)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:     "clear [cache-path]",
	Short:   "Delete the cache file",
	Aliases: []string{"rm"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveCachePath(args)
		if err != nil {
			return err
		}
		if err := cache.Remove(path); err != nil {
			return err
		}
		fmt.Printf("Cache %s cleared\n", path)
		return nil
	},
}

var cacheShowCmd = &cobra.Command{
	Use:     "show [cache-path]",
	Short:   "List cached items and their password sections",
	Aliases: []string{"ls"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveCachePath(args)
		if err != nil {
			return err
		}
		items, err := cache.Load(path)
		if err != nil {
			if errors.Is(err, cache.ErrNotFound) {
				fmt.Printf("No cache at %s\n", path)
				return nil
			}
			return err
		}

		if len(items) == 0 {
			fmt.Println("Cache is empty")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tSECTION\tTAGS")
		for _, it := range items {
			tags := strings.Join(it.Tags, ",")
			if tags == "" {
				tags = "-"
			}
			if len(it.Sections) == 0 {
				fmt.Fprintf(w, "%s\t-\t%s\n", it.Title, tags)
				continue
			}
			for _, s := range it.Sections {
				fmt.Fprintf(w, "%s\t%s\t%s\n", it.Title, s.Title, tags)
			}
		}
		return w.Flush()
	},
}

func init() {
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheShowCmd)
	rootCmd.AddCommand(cacheCmd)
}
