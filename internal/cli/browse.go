package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/artgrid/internal/logging"
	"github.com/rshade/artgrid/internal/tui"
)

// errNotInteractive is returned when browse is run without a terminal.
var errNotInteractive = errors.New("browse needs an interactive terminal; use 'artgrid page' for plain output")

// programRunner runs a Bubble Tea model to completion.
type programRunner func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error)

//nolint:gochecknoglobals // Overridden in tests.
var (
	runProgram programRunner = func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
		return tea.NewProgram(m, opts...).Run()
	}
	detectOutputMode = tui.DetectOutputMode
)

// NewBrowseCmd creates the interactive browse command.
func NewBrowseCmd() *cobra.Command {
	var (
		startPage      int
		printSelection bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse artworks interactively and select rows across pages",
		Long: `Opens a full-screen table of artworks.

Keys:
  space  toggle row          a  toggle every row on the page
  n / p  next / previous     g / G  first / last page
  c      select first N      x  clear selection
  s      cycle sort column   r  refresh page
  enter  artwork details     q  quit

Selections persist across pages. With --print-selection the selected artwork ids
are printed to stdout, one per line, when the browser exits.`,
		Example: `  # Start at page 5 and print the chosen ids
  artgrid browse --page 5 --print-selection > ids.txt`,
		Annotations: map[string]string{annotationOwnsTerminal: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, startPage, printSelection)
		},
	}

	cmd.Flags().IntVar(&startPage, "page", 1, "page to open first")
	cmd.Flags().BoolVar(&printSelection, "print-selection", false, "print selected artwork ids on exit")

	return cmd
}

func runBrowse(cmd *cobra.Command, startPage int, printSelection bool) error {
	if startPage < 1 {
		return fmt.Errorf("invalid --page %d: must be at least 1", startPage)
	}
	if detectOutputMode(false) != tui.OutputModeInteractive {
		return errNotInteractive
	}

	ctx := cmd.Context()
	var selected []int
	model := tui.NewBrowseModel(ctx, newSource(cmd),
		tui.WithStartPage(startPage),
		tui.WithBrowseLogger(*logging.FromContext(ctx)),
		tui.WithOnExit(func(ids []int) { selected = ids }),
	)

	if _, err := runProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}

	logger.Info().Int("selected", len(selected)).Msg("browser closed")
	if !printSelection {
		return nil
	}
	for _, id := range selected {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
