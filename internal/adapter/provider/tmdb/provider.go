// Package tmdb is the client for The Movie Database REST API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/moviedeck-backend/internal/config"
	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
)

const maxResponseBytes = 4 << 20

var errNotFound = errors.New("tmdb: not found")

var categoryPaths = map[domain.Category]string{
	domain.CategoryPopular:    "/movie/popular",
	domain.CategoryTopRated:   "/movie/top_rated",
	domain.CategoryUpcoming:   "/movie/upcoming",
	domain.CategoryNowPlaying: "/movie/now_playing",
}

// Cache stores raw JSON responses. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CacheTTL sets how long cached responses live. Lookup covers genres and
// languages.
type CacheTTL struct {
	Lookup  time.Duration
	Details time.Duration
}

// Provider fetches catalog data from TMDB. Every call is throttled by a
// shared limiter and bounded by the configured timeout; failures are never
// retried.
type Provider struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	ttl        CacheTTL
	log        *slog.Logger
}

// NewProvider creates a Provider from configuration. cache may be nil.
func NewProvider(cfg config.TMDBConfig, cache Cache, ttl CacheTTL, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cache:      cache,
		ttl:        ttl,
		log:        logger.With("adapter", "tmdb"),
	}
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// FetchMovieDetails returns a single movie. Returns nil, nil if TMDB does not
// know the id.
func (p *Provider) FetchMovieDetails(ctx context.Context, tmdbID int64, language string) (*provider.MovieDetails, error) {
	key := fmt.Sprintf("tmdb:details:%d:%s", tmdbID, language)

	if hit, ok := fromCache[provider.MovieDetails](ctx, p, key); ok {
		return &hit, nil
	}

	params := url.Values{}
	setLanguage(params, language)

	var details provider.MovieDetails
	err := p.getJSON(ctx, "/movie/"+strconv.FormatInt(tmdbID, 10), params, &details)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.store(ctx, key, details, p.ttl.Details)
	return &details, nil
}

// SearchMovies runs a title search.
func (p *Provider) SearchMovies(ctx context.Context, query string, page int, language string) (*provider.MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")
	setLanguage(params, language)

	return p.getPage(ctx, "/search/movie", params)
}

// ListCategory returns a page of a curated TMDB list.
func (p *Provider) ListCategory(ctx context.Context, category domain.Category, page int, language, region string) (*provider.MoviePage, error) {
	path, ok := categoryPaths[category]
	if !ok {
		return nil, domain.NewValidationError("category", fmt.Sprintf("unknown category %q", category))
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	setLanguage(params, language)
	if region != "" {
		params.Set("region", region)
	}

	return p.getPage(ctx, path, params)
}

// DiscoverMovies returns a page of the generic discover endpoint.
func (p *Provider) DiscoverMovies(ctx context.Context, q provider.DiscoverQuery) (*provider.MoviePage, error) {
	return p.getPage(ctx, "/discover/movie", q.Values())
}

// ListGenres returns the movie genre list.
func (p *Provider) ListGenres(ctx context.Context, language string) ([]provider.Genre, error) {
	key := "tmdb:genres:" + language

	if hit, ok := fromCache[[]provider.Genre](ctx, p, key); ok {
		return hit, nil
	}

	params := url.Values{}
	setLanguage(params, language)

	var resp genreListResponse
	if err := p.getJSON(ctx, "/genre/movie/list", params, &resp); err != nil {
		return nil, notFoundAsUpstream(err)
	}

	genres := resp.Genres
	if genres == nil {
		genres = []provider.Genre{}
	}
	p.store(ctx, key, genres, p.ttl.Lookup)
	return genres, nil
}

// ListLanguages returns the languages TMDB knows about.
func (p *Provider) ListLanguages(ctx context.Context) ([]provider.Language, error) {
	const key = "tmdb:languages"

	if hit, ok := fromCache[[]provider.Language](ctx, p, key); ok {
		return hit, nil
	}

	var languages []provider.Language
	if err := p.getJSON(ctx, "/configuration/languages", url.Values{}, &languages); err != nil {
		return nil, notFoundAsUpstream(err)
	}
	if languages == nil {
		languages = []provider.Language{}
	}

	p.store(ctx, key, languages, p.ttl.Lookup)
	return languages, nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func (p *Provider) getPage(ctx context.Context, path string, params url.Values) (*provider.MoviePage, error) {
	var page provider.MoviePage
	if err := p.getJSON(ctx, path, params, &page); err != nil {
		return nil, notFoundAsUpstream(err)
	}
	if page.Results == nil {
		page.Results = []provider.MovieSummary{}
	}
	return &page, nil
}

// getJSON performs one GET and decodes the body into out. A 404 yields
// errNotFound; every other failure wraps domain.ErrUpstream.
func (p *Provider) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("tmdb %s: throttle: %w: %w", path, domain.ErrUpstream, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params.Set("api_key", p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("tmdb %s: create request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	p.log.DebugContext(ctx, "tmdb request", slog.String("path", path))

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the request URL, api key included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		p.log.WarnContext(ctx, "tmdb request failed",
			slog.String("path", path),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("tmdb %s: %w: %w", path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.log.WarnContext(ctx, "tmdb unexpected status",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
		return fmt.Errorf("tmdb %s: status %d: %w", path, resp.StatusCode, domain.ErrUpstream)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		p.log.WarnContext(ctx, "tmdb decode failed", slog.String("path", path), slog.String("error", err.Error()))
		return fmt.Errorf("tmdb %s: decode: %w: %w", path, domain.ErrUpstream, err)
	}

	p.log.DebugContext(ctx, "tmdb response",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func notFoundAsUpstream(err error) error {
	if errors.Is(err, errNotFound) {
		return fmt.Errorf("%w: %w", err, domain.ErrUpstream)
	}
	return err
}

func setLanguage(params url.Values, language string) {
	if language != "" {
		params.Set("language", language)
	}
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

// fromCache decodes a cached entry into a fresh value. A corrupt entry is a
// miss and none of its fields leak into the caller's result.
func fromCache[T any](ctx context.Context, p *Provider, key string) (T, bool) {
	var zero T
	if p.cache == nil {
		return zero, false
	}

	raw, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.log.WarnContext(ctx, "tmdb cache get failed", slog.String("key", key), slog.String("error", err.Error()))
		return zero, false
	}
	if !ok {
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		p.log.WarnContext(ctx, "tmdb cache entry corrupt", slog.String("key", key), slog.String("error", err.Error()))
		return zero, false
	}
	return v, true
}

func (p *Provider) store(ctx context.Context, key string, v any, ttl time.Duration) {
	if p.cache == nil || ttl <= 0 {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		p.log.WarnContext(ctx, "tmdb cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := p.cache.Set(ctx, key, raw, ttl); err != nil {
		p.log.WarnContext(ctx, "tmdb cache set failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
