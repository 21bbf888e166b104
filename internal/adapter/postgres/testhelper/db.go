// Package testhelper starts the shared containers used by integration tests
// (PostgreSQL with migrations applied, and Redis) and seeds fixtures.
package testhelper

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/moviedeck-backend/internal/adapter/postgres"
)

const startupTimeout = 120 * time.Second

var (
	pgOnce    sync.Once
	sharedDSN string
	pgErr     error

	redisOnce  sync.Once
	sharedAddr string
	redisErr   error
)

// SetupTestDB starts the shared PostgreSQL container once per test binary,
// applies the embedded goose migrations and returns a pool closed via
// t.Cleanup. Skipped under -short.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	skipShort(t)

	pgOnce.Do(func() {
		sharedDSN, pgErr = startPostgres()
	})
	if pgErr != nil {
		t.Fatalf("testhelper: postgres: %v", pgErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, sharedDSN)
	if err != nil {
		t.Fatalf("testhelper: pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// DSN returns the connection string of the shared PostgreSQL container.
// SetupTestDB must have been called first.
func DSN() string {
	return sharedDSN
}

// SetupRedis starts the shared Redis container once per test binary and
// returns its host:port. Skipped under -short.
func SetupRedis(t *testing.T) string {
	t.Helper()
	skipShort(t)

	redisOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()

		container, err := start(ctx, testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		})
		if err != nil {
			redisErr = err
			return
		}
		sharedAddr, redisErr = endpoint(ctx, container, "6379")
	})
	if redisErr != nil {
		t.Fatalf("testhelper: redis: %v", redisErr)
	}
	return sharedAddr
}

func skipShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("testhelper: skipping container-backed test in -short mode")
	}
}

func startPostgres() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	container, err := start(ctx, testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "moviedeck",
			"POSTGRES_PASSWORD": "moviedeck",
			"POSTGRES_DB":       "moviedeck_test",
		},
		// Postgres restarts once after init; the second line is the real one.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	})
	if err != nil {
		return "", err
	}

	addr, err := endpoint(ctx, container, "5432")
	if err != nil {
		return "", err
	}

	dsn := fmt.Sprintf("postgres://moviedeck:moviedeck@%s/moviedeck_test?sslmode=disable", addr)

	db, err := postgres.OpenDB(ctx, dsn)
	if err != nil {
		return "", err
	}
	defer db.Close()

	migrator, err := postgres.NewMigrator(db)
	if err != nil {
		return "", err
	}
	if _, err := migrator.Up(ctx); err != nil {
		return "", fmt.Errorf("goose up: %w", err)
	}

	return dsn, nil
}

// start runs a container that lives until the process exits.
func start(ctx context.Context, req testcontainers.ContainerRequest) (testcontainers.Container, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", req.Image, err)
	}
	return container, nil
}

// endpoint returns the host:port mapped to the container port.
func endpoint(ctx context.Context, container testcontainers.Container, port nat.Port) (string, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}

	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		return "", fmt.Errorf("mapped port %s: %w", port, err)
	}

	return net.JoinHostPort(host, mapped.Port()), nil
}
