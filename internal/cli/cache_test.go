package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/artgrid/internal/cli/pagination"
)

func TestCache_WarmInfoClear(t *testing.T) {
	srv := newArtServer(t, 40)
	setupCLI(t, srv)

	out, _, err := execCLI(t, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:   0 (0 expired)")
	assert.Contains(t, out, "TTL:       1h")

	out, stderr, err := execCLI(t, "cache", "warm", "--pages", "1-3", "--batch-size", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Warmed 3 of 3 pages")
	assert.Contains(t, stderr, "batch 1/2")
	assert.Contains(t, stderr, "batch 2/2: 3/3 pages (0 failed)")
	for page := 1; page <= 3; page++ {
		assert.Equal(t, 1, srv.hitCount(page))
	}

	out, _, err = execCLI(t, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:   3 (0 expired)")
	assert.Contains(t, out, "Oldest:")

	_, _, err = execCLI(t, "page", "--page", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.hitCount(2), "warmed page should come from the cache")

	out, _, err = execCLI(t, "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 expired pages")

	out, _, err = execCLI(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 3 cached pages")

	out, _, err = execCLI(t, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:   0 (0 expired)")
}

func TestCache_WarmReportsFailures(t *testing.T) {
	srv := newArtServer(t, 40)
	setupCLI(t, srv)
	srv.failPage(2)

	out, _, err := execCLI(t, "cache", "warm", "--pages", "1-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 pages failed")
	assert.Contains(t, err.Error(), "fetch page 2")
	assert.Contains(t, out, "Warmed 2 of 3 pages")
}

func TestCache_WarmInvalidRange(t *testing.T) {
	srv := newArtServer(t, 40)
	setupCLI(t, srv)

	_, _, err := execCLI(t, "cache", "warm", "--pages", "5-2")
	require.ErrorIs(t, err, pagination.ErrInvalidRange)
	assert.Zero(t, srv.hitCount(5))
}

func TestCache_Disabled(t *testing.T) {
	srv := newArtServer(t, 40)
	setupCLI(t, srv)

	for _, args := range [][]string{
		{"cache", "info", "--no-cache"},
		{"cache", "clear", "--no-cache"},
		{"cache", "warm", "--no-cache"},
	} {
		_, _, err := execCLI(t, args...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page cache is disabled")
	}
}
