package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/artgrid/internal/catalog"
	"github.com/rshade/artgrid/internal/catalog/cache"
	"github.com/rshade/artgrid/internal/cli/pagination"
	"github.com/rshade/artgrid/internal/logging"
)

const bytesPerKiB = 1024

// NewCacheInfoCmd creates the cache info command.
func NewCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show page cache location and usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil {
				return fmt.Errorf("reading cache stats: %w", err)
			}

			p := message.NewPrinter(language.English)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Directory: %s\n", store.Directory())
			fmt.Fprintf(out, "TTL:       %s\n", cache.FormatDuration(time.Duration(store.TTL())*time.Second))
			p.Fprintf(out, "Entries:   %d (%d expired)\n", stats.Entries, stats.Expired)
			fmt.Fprintf(out, "Size:      %s\n", formatBytes(stats.Bytes))
			if stats.Entries > 0 {
				fmt.Fprintf(out, "Oldest:    %s\n", cache.FormatDuration(stats.Oldest))
			}
			return nil
		},
	}
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			removed, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			logger.Info().Int("removed", removed).Msg("cache cleared")
			cmd.Printf("Removed %d cached pages\n", removed)
			return nil
		},
	}
}

// NewCachePruneCmd creates the cache prune command.
func NewCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired or unreadable cached pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			removed, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			logger.Info().Int("removed", removed).Msg("cache pruned")
			cmd.Printf("Removed %d expired pages\n", removed)
			return nil
		},
	}
}

// NewCacheWarmCmd creates the cache warm command, which pre-fetches a page range.
func NewCacheWarmCmd() *cobra.Command {
	var (
		pages       string
		concurrency int
		batchSize   int
	)

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Pre-fetch a range of pages into the cache",
		Example: `  # Fetch the first twenty pages
  artgrid cache warm --pages 1-20

  # Fetch a few scattered pages, two at a time
  artgrid cache warm --pages 1-3,10,42 --concurrency 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pageList, err := pagination.ParsePageRange(pages)
			if err != nil {
				return err
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			client := newClient(cmd)
			src := catalog.NewCachedSource(client, store, client.Endpoint(), client.PageSize(),
				*logging.FromContext(cmd.Context()))

			stderr := cmd.ErrOrStderr()
			report, err := catalog.Warm(cmd.Context(), src, pageList, catalog.WarmOptions{
				Concurrency: concurrency,
				BatchSize:   batchSize,
				OnProgress: func(p catalog.WarmProgress) {
					fmt.Fprintf(stderr, "batch %d/%d: %d/%d pages (%d failed)\n",
						p.Batch, p.Batches, p.Done, p.Total, p.Failed)
				},
			})
			if err != nil {
				return err
			}

			logger.Info().
				Int("requested", report.Requested).
				Int("fetched", len(report.Fetched)).
				Int("failed", len(report.Failed)).
				Dur("elapsed", report.Elapsed).
				Msg("cache warmed")
			cmd.Printf("Warmed %d of %d pages in %s\n",
				len(report.Fetched), report.Requested, report.Elapsed.Round(time.Millisecond))

			if ferr := report.Err(); ferr != nil {
				return fmt.Errorf("%d pages failed: %w", len(report.Failed), ferr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pages, "pages", "1-5", "pages to fetch, e.g. 1-5,8")
	cmd.Flags().IntVar(&concurrency, "concurrency", catalog.DefaultWarmConcurrency, "parallel fetches per batch")
	cmd.Flags().IntVar(&batchSize, "batch-size", catalog.DefaultWarmBatchSize, "pages per batch")

	return cmd
}

// formatBytes renders n as B, KiB or MiB.
func formatBytes(n int64) string {
	switch {
	case n < bytesPerKiB:
		return fmt.Sprintf("%d B", n)
	case n < bytesPerKiB*bytesPerKiB:
		return fmt.Sprintf("%.1f KiB", float64(n)/bytesPerKiB)
	default:
		return fmt.Sprintf("%.1f MiB", float64(n)/(bytesPerKiB*bytesPerKiB))
	}
}
