package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Outbound catalog calls must be bounded by a timeout in this window.
const (
	MinCatalogTimeout = 5 * time.Second
	MaxCatalogTimeout = 10 * time.Second
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %s)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be in [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if err := c.TMDB.validate(); err != nil {
		return fmt.Errorf("tmdb: %w", err)
	}

	if c.Cache.Enabled() && (c.Cache.LookupTTL <= 0 || c.Cache.DetailsTTL <= 0) {
		return fmt.Errorf("cache: ttl values must be > 0")
	}

	if c.RateLimit.AuthPerMinute <= 0 {
		return fmt.Errorf("rate_limit.auth_per_minute must be > 0 (got %d)", c.RateLimit.AuthPerMinute)
	}

	return nil
}

func (t *TMDBConfig) validate() error {
	if strings.TrimSpace(t.APIKey) == "" {
		return fmt.Errorf("api_key is required")
	}

	u, err := url.Parse(t.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", t.BaseURL)
	}

	if t.Timeout < MinCatalogTimeout || t.Timeout > MaxCatalogTimeout {
		return fmt.Errorf("timeout must be between %s and %s (got %s)", MinCatalogTimeout, MaxCatalogTimeout, t.Timeout)
	}
	if t.RequestsPerSecond <= 0 || t.Burst <= 0 {
		return fmt.Errorf("requests_per_second and burst must be > 0")
	}
	if t.EnrichTimeout <= 0 || t.EnrichTimeout > t.Timeout {
		return fmt.Errorf("enrich_timeout must be in (0, timeout] (got %s)", t.EnrichTimeout)
	}
	if t.EnrichConcurrency <= 0 {
		return fmt.Errorf("enrich_concurrency must be > 0 (got %d)", t.EnrichConcurrency)
	}

	return nil
}
