package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/artgrid/internal/catalog"
	"github.com/rshade/artgrid/internal/catalog/cache"
	"github.com/rshade/artgrid/internal/config"
	"github.com/rshade/artgrid/internal/logging"
)

// errCacheDisabled is returned by cache commands when caching is turned off.
var errCacheDisabled = errors.New("page cache is disabled (cache.enabled=false or --no-cache)")

// newClient builds the HTTP catalog client from the global config.
func newClient(cmd *cobra.Command) *catalog.Client {
	cfg := config.GetGlobalConfig()
	return catalog.NewClient(
		cfg.API.BaseURL,
		catalog.WithPageSize(cfg.API.PageSize),
		catalog.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
		catalog.WithRateLimit(cfg.API.RequestsPerSecond, cfg.API.Burst),
		catalog.WithLogger(*logging.FromContext(cmd.Context())),
	)
}

// openStore opens the page cache described by the global config.
func openStore() (*cache.FileStore, error) {
	cfg := config.GetGlobalConfig()
	if !cfg.Cache.Enabled {
		return nil, errCacheDisabled
	}
	store, err := cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening page cache: %w", err)
	}
	return store, nil
}

// newSource returns the client wrapped in the page cache when caching is
// enabled. A cache that cannot be opened is logged and skipped.
func newSource(cmd *cobra.Command) catalog.Source {
	client := newClient(cmd)
	store, err := openStore()
	if err != nil {
		if !errors.Is(err, errCacheDisabled) {
			logger.Warn().Err(err).Msg("continuing without page cache")
		}
		return client
	}
	return catalog.NewCachedSource(client, store, client.Endpoint(), client.PageSize(),
		*logging.FromContext(cmd.Context()))
}
