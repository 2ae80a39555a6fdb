package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/rshade/artgrid/internal/cli"
	"github.com/rshade/artgrid/internal/config"
)

// artServer imitates the artworks endpoint with total synthetic records.
type artServer struct {
	*httptest.Server

	mu    sync.Mutex
	total int
	hits  map[int]int
	fail  map[int]bool
}

func newArtServer(t *testing.T, total int) *artServer {
	t.Helper()
	s := &artServer{total: total, hits: map[int]int{}, fail: map[int]bool{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *artServer) serve(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	s.mu.Lock()
	s.hits[page]++
	failing := s.fail[page]
	s.mu.Unlock()

	if r.URL.Path != "/artworks" || limit < 1 {
		http.NotFound(w, r)
		return
	}
	if failing {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		return
	}

	data := make([]map[string]any, 0, limit)
	for id := (page-1)*limit + 1; id <= min(page*limit, s.total); id++ {
		data = append(data, map[string]any{
			"id":              id,
			"title":           fmt.Sprintf("Work %03d", id),
			"place_of_origin": "Japan",
			"artist_display":  "Katsushika Hokusai",
			"inscriptions":    nil,
			"date_start":      1830,
			"date_end":        1832,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"pagination": map[string]any{
			"total":        s.total,
			"limit":        limit,
			"offset":       (page - 1) * limit,
			"total_pages":  (s.total + limit - 1) / limit,
			"current_page": page,
		},
		"data": data,
		"info": map[string]any{"version": "1.13"},
	})
}

func (s *artServer) hitCount(page int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[page]
}

func (s *artServer) failPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[page] = true
}

// setupCLI isolates the config directory and points the client at srv.
func setupCLI(t *testing.T, srv *artServer) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("ARTGRID_HOME", home)
	t.Setenv("ARTGRID_API_RPS", "1000")
	t.Setenv("ARTGRID_API_BURST", "100")
	if srv != nil {
		t.Setenv("ARTGRID_API_URL", srv.URL)
		t.Setenv("ARTGRID_PAGE_SIZE", "5")
	}
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execCLI runs the root command with args and returns stdout and stderr.
func execCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetGlobalConfigForTest()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
