package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/moviedeck-backend/internal/adapter/cache/redis"
	"github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres"
	membershiprepo "github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres/membership"
	movierepo "github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres/movie"
	ratingrepo "github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres/rating"
	reviewrepo "github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres/review"
	userrepo "github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/moviedeck-backend/internal/adapter/provider/tmdb"
	jwtauth "github.com/heartmarshall/moviedeck-backend/internal/auth"
	"github.com/heartmarshall/moviedeck-backend/internal/config"
	authsvc "github.com/heartmarshall/moviedeck-backend/internal/service/auth"
	"github.com/heartmarshall/moviedeck-backend/internal/service/catalog"
	"github.com/heartmarshall/moviedeck-backend/internal/service/interaction"
	usersvc "github.com/heartmarshall/moviedeck-backend/internal/service/user"
	"github.com/heartmarshall/moviedeck-backend/internal/transport/middleware"
	"github.com/heartmarshall/moviedeck-backend/internal/transport/rest"
)

// App owns the wired HTTP handler and the resources behind it.
type App struct {
	Handler http.Handler

	log     *slog.Logger
	pool    *pgxpool.Pool
	cache   *redis.Cache
	limiter *middleware.RateLimiter
}

// New connects to the database (migrating it when configured), connects the
// optional cache and builds the full HTTP handler. Close releases everything
// New acquired.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	a := &App{log: logger, pool: pool}

	// Interfaces stay nil when the cache is disabled so the provider and the
	// health handler see "no cache" rather than a nil *redis.Cache.
	var (
		providerCache tmdb.Cache
		cachePinger   interface{ Ping(context.Context) error }
	)
	if cfg.Cache.Enabled() {
		c, err := redis.New(ctx, cfg.Cache, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		a.cache = c
		providerCache = c
		cachePinger = c
	}

	// Adapters.
	provider := tmdb.NewProvider(cfg.TMDB, providerCache, tmdb.CacheTTL{
		Lookup:  cfg.Cache.LookupTTL,
		Details: cfg.Cache.DetailsTTL,
	}, logger)

	users := userrepo.New(pool)
	movies := movierepo.New(pool)
	memberships := membershiprepo.New(pool)
	ratings := ratingrepo.New(pool)
	reviews := reviewrepo.New(pool)
	tx := postgres.NewTxManager(pool)
	jwt := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	// Services.
	authService := authsvc.NewService(logger, users, jwt, cfg.Auth)
	userService := usersvc.NewService(logger, users, reviews, ratings)
	catalogService := catalog.NewService(logger, provider, catalog.Settings{
		DetailsLanguage: cfg.TMDB.DetailsLanguage,
		ListingLanguage: cfg.TMDB.ListingLanguage,
		Region:          cfg.TMDB.Region,
	}, nil)
	enricher := interaction.NewCatalogGenreEnricher(provider, cfg.TMDB.DetailsLanguage,
		cfg.TMDB.EnrichTimeout, cfg.TMDB.EnrichConcurrency)
	interactionService := interaction.NewService(logger, tx, movies, memberships, ratings, reviews,
		provider, enricher, cfg.TMDB.DetailsLanguage)

	// Transport.
	a.limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	mux := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(pool, cachePinger, Version),
		Auth:        rest.NewAuthHandler(authService, logger),
		Catalog:     rest.NewCatalogHandler(catalogService, logger),
		Interaction: rest.NewInteractionHandler(interactionService, logger),
		User:        rest.NewUserHandler(userService, logger),
	}, rest.RouteMiddleware{
		RequireAuth:  middleware.RequireAuth(authService),
		OptionalAuth: middleware.OptionalAuth(authService),
		AuthLimit:    a.limiter.Limit(cfg.RateLimit.AuthPerMinute),
	})

	a.Handler = middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	return a, nil
}

// Close stops background work and releases connections.
func (a *App) Close() {
	a.limiter.Stop()
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("close cache", slog.String("error", err.Error()))
		}
	}
	a.pool.Close()
}

// Run is the application entry point. It loads configuration, wires the
// application and serves HTTP until ctx is cancelled or the process receives
// SIGINT or SIGTERM, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("cache_enabled", cfg.Cache.Enabled()),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      a.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
