// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/fridge-be/internal/adapters/db"
	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/core/ports"
)

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// BatchOf builds a Batch from name -> [quantity, unit_price] decimal literals.
func BatchOf(items map[string][2]string) domain.Batch {
	batch := make(domain.Batch, len(items))
	for name, qp := range items {
		batch[name] = domain.NewBatchItem(qp[0], qp[1])
	}
	return batch
}

// InMemoryFridgeRepository is a map-backed FridgeRepository with the same
// serialization contract as the Postgres adapter: UpdateInventory holds a
// per-uid lock for the whole read-modify-write. ReplaceErr and FetchErr
// inject failures for atomicity tests.
type InMemoryFridgeRepository struct {
	mu       sync.Mutex
	rowLocks map[string]*sync.Mutex
	rows     map[string]domain.Inventory

	ReplaceErr error
	FetchErr   error
}

var _ ports.FridgeRepository = (*InMemoryFridgeRepository)(nil)

// NewInMemoryFridgeRepository creates an empty in-memory store.
func NewInMemoryFridgeRepository() *InMemoryFridgeRepository {
	return &InMemoryFridgeRepository{
		rowLocks: make(map[string]*sync.Mutex),
		rows:     make(map[string]domain.Inventory),
	}
}

func (r *InMemoryFridgeRepository) rowLock(uid string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.rowLocks[uid]
	if !ok {
		lock = &sync.Mutex{}
		r.rowLocks[uid] = lock
	}
	return lock
}

func (r *InMemoryFridgeRepository) Fetch(ctx context.Context, uid string) (domain.Inventory, bool, error) {
	if r.FetchErr != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, r.FetchErr)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[uid]
	if !ok {
		return nil, false, nil
	}
	return inv.Clone(), true, nil
}

func (r *InMemoryFridgeRepository) CreateIfAbsent(ctx context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[uid]; !ok {
		r.rows[uid] = domain.Inventory{}
	}
	return nil
}

func (r *InMemoryFridgeRepository) Replace(ctx context.Context, uid string, inv domain.Inventory) error {
	if r.ReplaceErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, r.ReplaceErr)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[uid] = inv.Clone()
	return nil
}

func (r *InMemoryFridgeRepository) UpdateInventory(ctx context.Context, uid string, apply func(domain.Inventory) (domain.Inventory, error)) error {
	lock := r.rowLock(uid)
	lock.Lock()
	defer lock.Unlock()

	if err := r.CreateIfAbsent(ctx, uid); err != nil {
		return err
	}
	current, _, err := r.Fetch(ctx, uid)
	if err != nil {
		return err
	}
	next, err := apply(current)
	if err != nil {
		return err
	}
	return r.Replace(ctx, uid, next)
}

func (r *InMemoryFridgeRepository) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := &ports.ListResult{
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: int64(len(r.rows)),
	}
	for uid, inv := range r.rows {
		result.Fridges = append(result.Fridges, ports.FridgeSummary{
			UID:        uid,
			ItemCount:  len(inv),
			TotalValue: inv.TotalValue(),
			UpdatedAt:  time.Now(),
		})
	}
	return result, nil
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// SetupTestRedis starts an in-process miniredis and a client pointed at it.
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return &TestRedis{Client: client, Server: mr}
}

// TestDB represents a test database instance
type TestDB struct {
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// SetupTestDB creates a PostgreSQL container for integration tests and
// applies the fridge schema. Tests using it should skip in -short mode.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_fridges",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	cfg := &db.Config{
		Host:           "localhost",
		Port:           resource.GetPort("5432/tcp"),
		User:           "test",
		Password:       "test",
		Database:       "test_fridges",
		SSLMode:        "disable",
		MaxConnections: 5,
		MinConnections: 1,
		ConnectTimeout: 5 * time.Second,
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var connErr error
		database, connErr = db.NewDatabase(ctx, cfg, TestLogger())
		return connErr
	})
	require.NoError(t, err, "Could not connect to PostgreSQL container")

	t.Cleanup(func() { database.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, stmt := range testSchema {
		_, err := database.Exec(ctx, stmt)
		require.NoError(t, err, "failed to apply test schema")
	}

	return &TestDB{
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   cfg,
	}
}

// testSchema mirrors the embedded migrations closely enough for repository
// tests without dragging golang-migrate into the container bootstrap.
var testSchema = []string{
	`CREATE TABLE IF NOT EXISTS fridges (
		uid        TEXT PRIMARY KEY,
		inventory  JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS scan_jobs (
		job_id     UUID PRIMARY KEY,
		uid        TEXT NOT NULL,
		file_path  TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'pending',
		error      TEXT,
		result     JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}
