package cli_test

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/artgrid/internal/cli/pagination"
)

type pageJSON struct {
	Pagination pagination.Meta `json:"pagination"`
	APIVersion string          `json:"api_version"`
	Data       []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	} `json:"data"`
}

func ndjsonIDs(t *testing.T, out string) []int {
	t.Helper()
	var ids []int
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var rec struct {
			ID int `json:"id"`
		}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		ids = append(ids, rec.ID)
	}
	return ids
}

func TestPage_Table(t *testing.T) {
	srv := newArtServer(t, 23)
	setupCLI(t, srv)

	out, _, err := execCLI(t, "page", "--page", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Work 006")
	assert.Contains(t, out, "Work 010")
	assert.NotContains(t, out, "Work 011")
	assert.Contains(t, out, "1830 - 1832")
	assert.Contains(t, out, "Showing 6 to 10 of 23 records · Page 2 of 5")
}

func TestPage_LastPageIsPartial(t *testing.T) {
	srv := newArtServer(t, 23)
	setupCLI(t, srv)

	out, _, err := execCLI(t, "page", "--page", "5", "--output", "ndjson")
	require.NoError(t, err)
	assert.Equal(t, []int{21, 22, 23}, ndjsonIDs(t, out))
}

func TestPage_JSON(t *testing.T) {
	srv := newArtServer(t, 23)
	setupCLI(t, srv)

	out, _, err := execCLI(t, "page", "--page", "2", "--output", "json")
	require.NoError(t, err)

	var doc pageJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Pagination.CurrentPage)
	assert.Equal(t, 5, doc.Pagination.TotalPages)
	assert.Equal(t, 23, doc.Pagination.TotalItems)
	assert.Equal(t, 6, doc.Pagination.FirstRow)
	assert.Equal(t, 10, doc.Pagination.LastRow)
	assert.True(t, doc.Pagination.HasPrevious)
	assert.True(t, doc.Pagination.HasNext)
	assert.Equal(t, "1.13", doc.APIVersion)
	require.Len(t, doc.Data, 5)
	assert.Equal(t, 6, doc.Data[0].ID)
}

func TestPage_OutputFormatFromConfig(t *testing.T) {
	srv := newArtServer(t, 23)
	setupCLI(t, srv)
	t.Setenv("ARTGRID_OUTPUT_FORMAT", "ndjson")

	out, _, err := execCLI(t, "page")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ndjsonIDs(t, out))
}

func TestPage_Sort(t *testing.T) {
	srv := newArtServer(t, 23)
	setupCLI(t, srv)

	out, _, err := execCLI(t, "page", "--output", "ndjson", "--sort", "title:desc")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, ndjsonIDs(t, out))

	out, _, err = execCLI(t, "page", "--sort", "id:desc")
	require.NoError(t, err)
	assert.Contains(t, out, "sorted by id desc")
}

func TestPage_PageSizeFlag(t *testing.T) {
	srv := newArtServer(t, 23)
	setupCLI(t, srv)

	out, _, err := execCLI(t, "page", "--page-size", "3", "--page", "2", "--output", "ndjson")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, ndjsonIDs(t, out))
}

func TestPage_Errors(t *testing.T) {
	srv := newArtServer(t, 23)
	setupCLI(t, srv)
	srv.failPage(4)

	tests := []struct {
		name    string
		args    []string
		wantIs  error
		wantMsg string
	}{
		{name: "page zero", args: []string{"page", "--page", "0"}, wantIs: pagination.ErrInvalidPage},
		{name: "page size too large", args: []string{"page", "--page-size", "500"}, wantIs: pagination.ErrInvalidPageSize},
		{name: "unknown sort field", args: []string{"page", "--sort", "colour"}, wantIs: pagination.ErrInvalidSortField},
		{name: "bad sort order", args: []string{"page", "--sort", "title:up"}, wantIs: pagination.ErrInvalidSortOrder},
		{name: "bad output", args: []string{"page", "--output", "xml"}, wantMsg: "unsupported output format"},
		{name: "upstream failure", args: []string{"page", "--page", "4"}, wantMsg: "status 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execCLI(t, tt.args...)
			require.Error(t, err)
			if tt.wantIs != nil {
				require.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestPage_UsesCache(t *testing.T) {
	srv := newArtServer(t, 23)
	setupCLI(t, srv)

	for range 2 {
		_, _, err := execCLI(t, "page", "--page", "3")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, srv.hitCount(3), "second run should be served from the cache")

	_, _, err := execCLI(t, "page", "--page", "3", "--refresh")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.hitCount(3), "--refresh should bypass the cache")

	_, _, err = execCLI(t, "page", "--page", "3", "--no-cache")
	require.NoError(t, err)
	assert.Equal(t, 3, srv.hitCount(3), "--no-cache should always hit the API")
}
