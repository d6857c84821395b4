package app

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the local catalog cache",
	}

	cmd.AddCommand(
		newCacheInfoCmd(),
		newCacheClearCmd(),
	)

	// `catalogctl cache` with no subcommand defaults to info.
	cmd.RunE = newCacheInfoCmd().RunE

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache freshness and location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, fetchedAt, count, exists := snap.Info()

			header("Catalog cache")
			printField("path", path)
			printField("ttl", cfg.Cache.TTL.String())
			if !exists {
				printField("state", color.HiBlackString("empty"))
				return nil
			}

			age := time.Since(fetchedAt).Round(time.Second)
			state := color.GreenString("fresh")
			if age > cfg.Cache.TTL {
				state = color.YellowString("stale (next read refetches)")
			}
			printField("state", state)
			printField("fetched", fmt.Sprintf("%s (%s ago)", fetchedAt.Format(time.RFC3339), age))
			printField("projects", fmt.Sprintf("%d", count))
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop the cached catalog so the next read refetches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectCache.Invalidate()
			if err := snap.Invalidate(); err != nil {
				return fmt.Errorf("clearing snapshot: %w", err)
			}
			ok("Cache cleared")
			return nil
		},
	}
}
