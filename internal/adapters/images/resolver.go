// Package images resolves player photos from the Wikipedia API.
//
// Resolution is best-effort by contract: any failure — no search hit, the
// endpoint being unreachable, a malformed payload, a page without a
// thumbnail — yields the configured placeholder URL instead of an error.
// Callers therefore always receive a displayable URL and roster assembly
// never blocks on the image boundary.
package images

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/gaffer/pkg/logger"
	"github.com/okian/gaffer/pkg/metrics"
)

// Default resolver configuration constants.
const (
	defaultBaseURL     = "https://en.wikipedia.org/w/api.php"
	defaultPlaceholder = "https://cdn-icons-png.flaticon.com/512/3673/3673323.png"
	defaultUserAgent   = "gaffer/1.0 (tactical board; contact: dreamteam@example.com)"
	defaultTimeout     = 5 * time.Second
	defaultCacheSize   = 1024
	thumbnailSize      = 200
)

// Lookup outcomes recorded on the image resolution metric.
const (
	outcomeResolved = "resolved"
	outcomeFallback = "fallback"
	outcomeCacheHit = "cache_hit"
)

// Resolver turns a player display name into a displayable image URL.
type Resolver interface {
	// Resolve performs a single best-effort lookup. It never fails: on any
	// error the placeholder URL is returned.
	Resolve(ctx context.Context, name string) string
}

// WikipediaResolver implements Resolver against the MediaWiki API, using
// the search endpoint to find the player's page and the pageimages
// endpoint to fetch its thumbnail.
type WikipediaResolver struct {
	client      *http.Client
	baseURL     string
	placeholder string
	userAgent   string
	cache       *urlCache
	logger      logger.Logger
}

// Option applies a configuration option to the WikipediaResolver.
type Option func(*WikipediaResolver)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *WikipediaResolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithBaseURL points the resolver at a different MediaWiki endpoint.
func WithBaseURL(baseURL string) Option {
	return func(r *WikipediaResolver) {
		if baseURL != "" {
			r.baseURL = baseURL
		}
	}
}

// WithPlaceholderURL sets the fallback image returned on any failure.
func WithPlaceholderURL(placeholder string) Option {
	return func(r *WikipediaResolver) {
		if placeholder != "" {
			r.placeholder = placeholder
		}
	}
}

// WithUserAgent sets the User-Agent header sent to the image source.
func WithUserAgent(agent string) Option {
	return func(r *WikipediaResolver) {
		if agent != "" {
			r.userAgent = agent
		}
	}
}

// WithTimeout bounds a single lookup (both phases together).
func WithTimeout(timeout time.Duration) Option {
	return func(r *WikipediaResolver) {
		if timeout > 0 {
			r.client.Timeout = timeout
		}
	}
}

// WithCacheSize bounds the in-memory URL cache.
func WithCacheSize(size int) Option {
	return func(r *WikipediaResolver) {
		r.cache = newURLCache(size)
	}
}

// WithLogger sets a custom logger for the resolver.
func WithLogger(log logger.Logger) Option {
	return func(r *WikipediaResolver) {
		if log != nil {
			r.logger = log
		}
	}
}

// NewWikipediaResolver creates a resolver with configuration options.
func NewWikipediaResolver(opts ...Option) *WikipediaResolver {
	r := &WikipediaResolver{
		client:      &http.Client{Timeout: defaultTimeout},
		baseURL:     defaultBaseURL,
		placeholder: defaultPlaceholder,
		userAgent:   defaultUserAgent,
		cache:       newURLCache(defaultCacheSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("images")
	}
	return r
}

// Placeholder returns the fallback URL used when lookups fail.
func (r *WikipediaResolver) Placeholder() string {
	return r.placeholder
}

// Resolve looks up an image URL for name. Successes are cached for the
// lifetime of the process; failures are not, so a later lookup may still
// succeed once the source recovers.
func (r *WikipediaResolver) Resolve(ctx context.Context, name string) string {
	if name == "" {
		metrics.RecordImageResolution(outcomeFallback)
		return r.placeholder
	}

	if cached, ok := r.cache.get(name); ok {
		metrics.RecordImageResolution(outcomeCacheHit)
		return cached
	}

	start := time.Now()
	resolved, err := r.lookup(ctx, name)
	metrics.RecordImageResolveLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		r.logger.Debug(ctx, "image lookup fell back to placeholder",
			logger.String("player", name),
			logger.Error(err),
		)
		metrics.RecordImageResolution(outcomeFallback)
		return r.placeholder
	}

	r.cache.put(name, resolved)
	metrics.RecordImageResolution(outcomeResolved)
	return resolved
}

// searchResponse mirrors the MediaWiki search payload.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// imageResponse mirrors the MediaWiki pageimages payload.
type imageResponse struct {
	Query struct {
		Pages map[string]struct {
			Thumbnail *struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}

// lookup performs the two-phase search-then-thumbnail flow.
func (r *WikipediaResolver) lookup(ctx context.Context, name string) (string, error) {
	searchParams := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {name + " footballer"},
		"format":   {"json"},
	}
	var search searchResponse
	if err := r.getJSON(ctx, searchParams, &search); err != nil {
		return "", err
	}
	if len(search.Query.Search) == 0 {
		return "", ErrNoImage
	}

	imageParams := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"titles":      {search.Query.Search[0].Title},
		"prop":        {"pageimages"},
		"pithumbsize": {strconv.Itoa(thumbnailSize)},
		"pilicense":   {"any"},
	}
	var image imageResponse
	if err := r.getJSON(ctx, imageParams, &image); err != nil {
		return "", err
	}
	for _, page := range image.Query.Pages {
		if page.Thumbnail != nil && page.Thumbnail.Source != "" {
			return page.Thumbnail.Source, nil
		}
	}
	return "", ErrNoImage
}

// getJSON issues one GET against the API and decodes the JSON body.
func (r *WikipediaResolver) getJSON(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ErrSourceUnavailable
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
