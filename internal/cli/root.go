package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/artgrid/internal/cli/pagination"
	"github.com/rshade/artgrid/internal/config"
	"github.com/rshade/artgrid/internal/logging"
	"github.com/rshade/artgrid/pkg/version"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationOwnsTerminal marks commands that draw a full-screen UI; their logs
// must never reach the terminal.
const annotationOwnsTerminal = "owns-terminal"

// NewRootCmd creates the root Cobra command for the artgrid CLI.
// It loads configuration, wires up logging and registers the browse, page,
// cache and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:   "artgrid",
		Short: "Browse the Art Institute of Chicago collection and select artworks across pages",
		Long: `artgrid pages through the Art Institute of Chicago public API.

The interactive browser keeps a selection that survives page changes: rows can be
toggled one at a time, a whole page at a time, or by asking for the first N rows.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("artgrid {{.Version}} (commit %s, built %s)\n",
		version.GetGitCommit(), version.GetBuildDate()))

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.artgrid/config.yaml)")
	cmd.PersistentFlags().Int("page-size", 0, pageSizeUsage())
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the on-disk page cache")
	cmd.AddCommand(NewBrowseCmd(), NewPageCmd(), newCacheCmd(), newConfigCmd())

	return cmd
}

func pageSizeUsage() string {
	presets := make([]string, len(pagination.PageSizeOptions))
	for i, n := range pagination.PageSizeOptions {
		presets[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("records per page, %d-%d (common: %s; default from config)",
		pagination.MinPageSize, pagination.MaxPageSize, strings.Join(presets, ", "))
}

// loadConfig resolves the configuration for this invocation and applies the
// persistent flag overrides.
func loadConfig(cmd *cobra.Command) error {
	var cfg *config.Config
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", path, err)
		}
		cfg = loaded
	} else {
		cfg = config.New()
	}

	if cmd.Flags().Changed("page-size") {
		size, _ := cmd.Flags().GetInt("page-size")
		if err := pagination.ValidatePageSize(size); err != nil {
			return err
		}
		cfg.API.PageSize = size
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Browse interactively, printing the selected ids on exit
  artgrid browse --print-selection

  # Dump page 3 as JSON, 25 records per page
  artgrid page --page 3 --page-size 25 --output json

  # Sort a page by start date, newest first
  artgrid page --page 2 --sort start:desc

  # Pre-fetch pages 1 to 20 into the cache
  artgrid cache warm --pages 1-20

  # Set configuration values
  artgrid config set api.page_size 25`

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Page cache management commands"}
	cmd.AddCommand(
		NewCacheInfoCmd(), NewCacheClearCmd(), NewCachePruneCmd(), NewCacheWarmCmd(),
	)
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
