package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/artgrid/internal/catalog"
	"github.com/rshade/artgrid/internal/cli/pagination"
	"github.com/rshade/artgrid/internal/config"
)

// Output formats accepted by --output.
const (
	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
)

const (
	// tabPadding is the minimum column padding for tabwriter output.
	tabPadding = 2

	maxTitleWidth  = 48
	maxArtistWidth = 40
	maxCellWidth   = 24
)

// pageDocument is the JSON shape of one page.
type pageDocument struct {
	Pagination pagination.Meta   `json:"pagination"`
	APIVersion string            `json:"api_version,omitempty"`
	Data       []catalog.Artwork `json:"data"`
}

// NewPageCmd creates the page command, which prints one catalog page.
func NewPageCmd() *cobra.Command {
	var (
		pageNum int
		output  string
		sortBy  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print one page of artworks",
		Long: `Fetches one page of the collection and prints it as a table, a JSON document
or newline-delimited JSON records.`,
		Example: `  # Print the first page
  artgrid page

  # Third page as JSON, sorted by title descending
  artgrid page --page 3 --output json --sort title:desc

  # Stream records for jq
  artgrid page --page 2 --output ndjson | jq .title`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPage(cmd, pageNum, config.GetOutputFormat(output), sortBy, refresh)
		},
	}

	cmd.Flags().IntVar(&pageNum, "page", pagination.DefaultPage, "page number to fetch")
	cmd.Flags().StringVar(&output, "output", "", "output format: table, json or ndjson (default from config)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort field[:asc|desc]; fields: id, title, origin, start, end")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache for this page")

	return cmd
}

func runPage(cmd *cobra.Command, pageNum int, output, sortBy string, refresh bool) error {
	params := pagination.NewParams()
	params.Page = pageNum
	params.PageSize = config.GetGlobalConfig().API.PageSize
	if err := params.Validate(); err != nil {
		return err
	}

	field, order, err := pagination.ParseSort(sortBy)
	if err != nil {
		return err
	}
	sorter := pagination.NewArtworkSorter()
	if field != "" && !sorter.IsValidField(field) {
		return fmt.Errorf("%w: %q (valid: %s)", pagination.ErrInvalidSortField, field,
			strings.Join(sorter.GetValidFields(), ", "))
	}

	switch output {
	case outputTable, outputJSON, outputNDJSON:
	default:
		return fmt.Errorf("unsupported output format %q: use table, json or ndjson", output)
	}

	src := newSource(cmd)
	var page *catalog.Page
	if refresh {
		page, err = catalog.Refresh(cmd.Context(), src, pageNum)
	} else {
		page, err = src.FetchPage(cmd.Context(), pageNum)
	}
	if err != nil {
		return err
	}
	records := sorter.Sort(page.Records, field, order)

	logger.Debug().Int("page", page.Number).Int("records", len(records)).Str("output", output).Msg("page fetched")

	params.PageSize = page.Limit
	meta := pagination.NewMeta(*params, page.Total, len(records))

	out := cmd.OutOrStdout()
	switch output {
	case outputJSON:
		return writePageJSON(out, pageDocument{Pagination: meta, APIVersion: page.APIVersion, Data: records})
	case outputNDJSON:
		return writeNDJSON(out, records)
	default:
		return writePageTable(out, records, meta, field, order)
	}
}

func writePageJSON(w io.Writer, doc pageDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding page: %w", err)
	}
	return nil
}

func writeNDJSON(w io.Writer, records []catalog.Artwork) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding artwork %d: %w", r.ID, err)
		}
	}
	return nil
}

func writePageTable(w io.Writer, records []catalog.Artwork, meta pagination.Meta, field, order string) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tORIGIN\tARTIST\tINSCRIPTIONS\tDATES")
	for _, a := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			truncate(a.Title, maxTitleWidth),
			truncate(a.PlaceOfOrigin, maxCellWidth),
			truncate(a.ArtistDisplay, maxArtistWidth),
			truncate(a.Inscriptions, maxCellWidth),
			dateRange(a),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	footer := p.Sprintf("Showing %d to %d of %d records · Page %d of %d",
		meta.FirstRow, meta.LastRow, meta.TotalItems, meta.CurrentPage, meta.TotalPages)
	if field != "" {
		footer += fmt.Sprintf(" · sorted by %s %s", field, order)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", footer)
	return err
}

// truncate flattens s to one line and cuts it to n runes.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "-"
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func dateRange(a catalog.Artwork) string {
	if a.DateStart == 0 && a.DateEnd == 0 {
		return "-"
	}
	return fmt.Sprintf("%d - %d", a.DateStart, a.DateEnd)
}
