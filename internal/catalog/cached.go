package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rshade/artgrid/internal/catalog/cache"
)

// PageStore is the subset of cache.FileStore used by CachedSource.
type PageStore interface {
	Get(key string) (*cache.Entry, error)
	Set(key string, data json.RawMessage) error
}

// CachedSource serves pages from a PageStore and falls through to the wrapped
// Source on a miss. Cache write failures are logged and otherwise ignored.
type CachedSource struct {
	src      Source
	store    PageStore
	endpoint string
	pageSize int
	logger   zerolog.Logger
}

// NewCachedSource wraps src. endpoint and pageSize scope the cache keys so a
// change of either never serves a page cut differently.
func NewCachedSource(src Source, store PageStore, endpoint string, pageSize int, logger zerolog.Logger) *CachedSource {
	return &CachedSource{
		src:      src,
		store:    store,
		endpoint: endpoint,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "page_cache").Logger(),
	}
}

// FetchPage returns the cached page if present and fresh, otherwise fetches it.
func (s *CachedSource) FetchPage(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		return nil, &FetchError{Page: page, Err: ErrInvalidPage}
	}

	key := cache.PageKey(s.endpoint, s.pageSize, page)
	entry, err := s.store.Get(key)
	switch {
	case err == nil:
		var p Page
		decodeErr := json.Unmarshal(entry.Data, &p)
		if decodeErr == nil {
			s.logger.Debug().Int("page", page).Msg("cache hit")
			return &p, nil
		}
		s.logger.Debug().Err(decodeErr).Int("page", page).Msg("discarding undecodable cache entry")
	case errors.Is(err, cache.ErrCacheNotFound), errors.Is(err, cache.ErrCacheExpired),
		errors.Is(err, cache.ErrCacheDisabled):
	default:
		s.logger.Debug().Err(err).Int("page", page).Msg("cache read failed")
	}

	return s.fetchAndStore(ctx, page, key)
}

// Refresh fetches page from the wrapped source and overwrites the cached copy.
func (s *CachedSource) Refresh(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		return nil, &FetchError{Page: page, Err: ErrInvalidPage}
	}
	return s.fetchAndStore(ctx, page, cache.PageKey(s.endpoint, s.pageSize, page))
}

func (s *CachedSource) fetchAndStore(ctx context.Context, page int, key string) (*Page, error) {
	p, err := s.src.FetchPage(ctx, page)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		s.logger.Warn().Err(err).Int("page", page).Msg("failed to encode page for cache")
		return p, nil
	}
	if err = s.store.Set(key, data); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		s.logger.Warn().Err(err).Int("page", page).Msg("failed to write page cache")
	}
	return p, nil
}
