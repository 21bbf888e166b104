package config

import (
	"strings"
	"time"
)

// Config is the root application configuration. It is loaded once at
// startup and passed by value or pointer into constructors; nothing reads
// the environment after Load returns.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	TMDB      TMDBConfig      `yaml:"tmdb"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"http://localhost:5173"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
	TraceQueries    bool          `yaml:"trace_queries"      env:"DATABASE_TRACE_QUERIES"      env-default:"false"`
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"moviedeck"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
	BcryptCost     int           `yaml:"bcrypt_cost"      env:"AUTH_BCRYPT_COST"      env-default:"10"`
}

// TMDBConfig holds settings for the external movie catalog.
type TMDBConfig struct {
	APIKey            string        `yaml:"api_key"            env:"TMDB_API_KEY"            env-required:"true"`
	BaseURL           string        `yaml:"base_url"           env:"TMDB_BASE_URL"           env-default:"https://api.themoviedb.org/3"`
	ImageBaseURL      string        `yaml:"image_base_url"     env:"TMDB_IMAGE_BASE_URL"     env-default:"https://image.tmdb.org/t/p/w500"`
	DetailsLanguage   string        `yaml:"details_language"   env:"TMDB_DETAILS_LANGUAGE"   env-default:"en-US"`
	ListingLanguage   string        `yaml:"listing_language"   env:"TMDB_LISTING_LANGUAGE"   env-default:"en-GB"`
	Region            string        `yaml:"region"             env:"TMDB_REGION"             env-default:"GB"`
	Timeout           time.Duration `yaml:"timeout"            env:"TMDB_TIMEOUT"            env-default:"8s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"TMDB_REQUESTS_PER_SECOND" env-default:"40"`
	Burst             int           `yaml:"burst"              env:"TMDB_BURST"              env-default:"20"`
	EnrichTimeout     time.Duration `yaml:"enrich_timeout"     env:"TMDB_ENRICH_TIMEOUT"     env-default:"3s"`
	EnrichConcurrency int           `yaml:"enrich_concurrency" env:"TMDB_ENRICH_CONCURRENCY" env-default:"4"`
}

// CacheConfig holds the optional Redis cache settings. An empty RedisAddr
// disables caching.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr"     env:"CACHE_REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"CACHE_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"CACHE_REDIS_DB"       env-default:"0"`
	LookupTTL     time.Duration `yaml:"lookup_ttl"     env:"CACHE_LOOKUP_TTL"     env-default:"24h"`
	DetailsTTL    time.Duration `yaml:"details_ttl"    env:"CACHE_DETAILS_TTL"    env-default:"6h"`
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

// RateLimitConfig limits requests to the authentication endpoints per client IP.
type RateLimitConfig struct {
	AuthPerMinute   int           `yaml:"auth_per_minute"  env:"RATE_LIMIT_AUTH_PER_MINUTE" env-default:"20"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP"         env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
