//go:build integration || e2e

// Package pgtest starts one Postgres container per test binary and hands each test its own
// freshly migrated database.
package pgtest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"hostel-backoffice/internal/infra/db"
	"hostel-backoffice/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	image        = "postgres:17"
	testUser     = "test"
	testPassword = "testpass"
)

var (
	containerOnce sync.Once
	container     *postgres.PostgresContainer
	containerErr  error
)

type endpoint struct {
	Host string
	Port nat.Port
}

// The container is left to Ryuk, which removes it when the test binary exits.
func start(t *testing.T) endpoint {
	t.Helper()
	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		container, containerErr = postgres.Run(ctx, image,
			postgres.WithDatabase("postgres"),
			postgres.WithUsername(testUser),
			postgres.WithPassword(testPassword),
			postgres.BasicWaitStrategies(),
			testcontainers.CustomizeRequest(testcontainers.GenericContainerRequest{
				ContainerRequest: testcontainers.ContainerRequest{
					Tmpfs:  map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
					Labels: map[string]string{"purpose": "hostel-backoffice-tests"},
				},
			}),
		)
	})
	require.NoError(t, containerErr, "failed to start postgres container")

	ctx := context.Background()
	port, err := container.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)
	return endpoint{Host: host, Port: port}
}

// NewDatabase creates an empty database, applies the schema and returns a pool on it.
// The database is dropped when the test ends.
func NewDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()
	ep := start(t)

	cfg := config.DBConfig{
		Host:     ep.Host,
		Port:     ep.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   "postgres",
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 20,
	}

	admin, closeAdmin, err := db.Connect(cfg)
	require.NoError(t, err, "failed to connect as admin")
	defer closeAdmin()

	name := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err, "failed to create test database")

	cfg.DBName = name
	pool, closePool, err := db.Connect(cfg)
	require.NoError(t, err, "failed to connect to test database")

	t.Cleanup(func() {
		closePool()
		dropCfg := cfg
		dropCfg.DBName = "postgres"
		adminPool, closeDrop, err := db.Connect(dropCfg)
		if err != nil {
			slog.Warn("failed to reconnect for cleanup", "database", name, "error", err.Error())
			return
		}
		defer closeDrop()
		if _, err := adminPool.Exec(context.Background(), "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", name, "error", err.Error())
		}
	})

	applySchema(t, pool)
	return pool, cfg
}

func applySchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations found in %s", dir)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, file := range files {
		sql, err := os.ReadFile(file)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "failed to apply %s", filepath.Base(file))
	}
}

// migrationsDir walks up from the package directory go test runs in until it finds go.mod.
func migrationsDir(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations")
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, parent, dir, "module root not found")
		dir = parent
	}
}
