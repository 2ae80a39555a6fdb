package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/rshade/artgrid/pkg/version"
)

// Client defaults.
const (
	DefaultBaseURL           = "https://api.artic.edu/api/v1"
	DefaultPageSize          = 12
	DefaultTimeout           = 15 * time.Second
	DefaultRequestsPerSecond = 1.0
	DefaultBurst             = 3

	// SupportedAPIVersions is the info.version range this client understands.
	SupportedAPIVersions = ">= 1.0, < 2.0"

	artworksPath = "/artworks"
	fieldList    = "id,title,place_of_origin,artist_display,inscriptions,date_start,date_end"

	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 512
)

// Client fetches artwork pages over HTTP. It is safe for concurrent use;
// concurrent requests for the same page share one round trip.
type Client struct {
	baseURL    string
	pageSize   int
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger

	group       singleflight.Group
	versionOnce sync.Once
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPageSize sets the number of records requested per page.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit throttles outgoing requests. rps <= 0 disables throttling.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "catalog").Logger()
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   DefaultPageSize,
		userAgent:  version.UserAgent(),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultBurst),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the artworks collection URL.
func (c *Client) Endpoint() string {
	return c.baseURL + artworksPath
}

// PageSize returns the number of records requested per page.
func (c *Client) PageSize() int {
	return c.pageSize
}

// FetchPage fetches one page. The returned page is owned by the caller.
func (c *Client) FetchPage(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		return nil, &FetchError{Page: page, Err: ErrInvalidPage}
	}

	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Page: page, Err: err}
	}

	// The shared fetch outlives any single caller; each caller waits on its own ctx.
	ch := c.group.DoChan(strconv.Itoa(page), func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx), page)
	})
	select {
	case <-ctx.Done():
		return nil, &FetchError{Page: page, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug().Int("page", page).Msg("shared in-flight page request")
		}
		return res.Val.(*Page).Clone(), nil
	}
}

// Refresh is FetchPage; the client holds no cache.
func (c *Client) Refresh(ctx context.Context, page int) (*Page, error) {
	return c.FetchPage(ctx, page)
}

func (c *Client) fetch(ctx context.Context, page int) (*Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Page: page, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(page), nil)
	if err != nil {
		return nil, &FetchError{Page: page, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("AIC-User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Page: page, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("page", page).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("fetched page")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			Page:       page,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s %s", ErrUnexpectedStatus, resp.Status, strings.TrimSpace(string(body))),
		}
	}

	var payload apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{Page: page, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}

	c.versionOnce.Do(func() {
		if vErr := CheckAPIVersion(payload.Info.Version); vErr != nil {
			c.logger.Warn().Err(vErr).Str("api_version", payload.Info.Version).Msg("catalog API version not verified")
		}
	})

	return payload.toPage(page, c.pageSize), nil
}

func (c *Client) pageURL(page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("fields", fieldList)
	return c.Endpoint() + "?" + q.Encode()
}

// CheckAPIVersion reports whether v satisfies SupportedAPIVersions.
func CheckAPIVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: no version reported", ErrUnsupportedVersion)
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedAPIVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(parsed) {
		return fmt.Errorf("%w: %s not in %q", ErrUnsupportedVersion, parsed, SupportedAPIVersions)
	}
	return nil
}
