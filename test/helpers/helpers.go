// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/coffeechain-sync/internal/adapters/db"
	"github.com/ammerola/coffeechain-sync/internal/core/domain"
	"github.com/ammerola/coffeechain-sync/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

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

// SetupTestDB creates a PostgreSQL container for integration tests
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
			"POSTGRES_DB=test_inventory",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_inventory",
		SSLMode:            "disable",
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	// Wait for database to be ready
	var database *db.Database
	err = pool.Retry(func() error {
		var err error
		database, err = db.NewDatabase(context.Background(), dbConfig, TestLogger())
		return err
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	migrationURL := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(dbConfig.User, dbConfig.Password),
		Host:     net.JoinHostPort(dbConfig.Host, dbConfig.Port),
		Path:     "/" + dbConfig.Database,
		RawQuery: url.Values{"sslmode": {dbConfig.SSLMode}}.Encode(),
	}
	migrationConfig := &MigrationConfig{DatabaseURL: migrationURL.String()}

	err = RunMigrationsWithRetry(context.Background(), migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates an in-memory Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "coffeechain-sync-test",
			Environment: "test",
			LogLevel:    "debug",
			LogFormat:   "text",
		},
		API: config.APIConfig{
			URL:     "http://localhost:8081/v1/inventory",
			Key:     "test-key",
			Timeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "test",
			Password:        "test",
			Name:            "test_inventory",
			SSLMode:         "disable",
			ConnectTimeout:  5 * time.Second,
			UpsertChunkSize: db.DefaultChunkSize,
		},
		Redis: config.RedisConfig{
			LockTTL: time.Minute,
		},
		Secrets: config.SecretsConfig{
			Provider: config.SecretsProviderEnv,
		},
	}
}

// CreateTestInventoryItem creates a test inventory item
func CreateTestInventoryItem(overrides ...func(*domain.InventoryItem)) *domain.InventoryItem {
	item := &domain.InventoryItem{
		SKU:       "C1001",
		ItemName:  "Dark Roast",
		Quantity:  24,
		Warehouse: "W1",
	}

	for _, override := range overrides {
		override(item)
	}

	return item
}

// CreateTestInventoryItems creates multiple test inventory items with distinct SKUs
func CreateTestInventoryItems(count int) []domain.InventoryItem {
	items := make([]domain.InventoryItem, count)

	names := []string{"Dark Roast", "Latte Beans", "Espresso Blend", "Decaf Colombian", "Cold Brew Pack"}
	warehouses := []string{"W1", "W2", "W3"}

	for i := 0; i < count; i++ {
		items[i] = *CreateTestInventoryItem(func(item *domain.InventoryItem) {
			item.SKU = fmt.Sprintf("C%04d", 1001+i)
			item.ItemName = names[i%len(names)]
			item.Warehouse = warehouses[i%len(warehouses)]
			item.Quantity = 10 * (i + 1)
		})
	}

	return items
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.ExecContext(context.Background(), "TRUNCATE TABLE inventory")
	require.NoError(t, err, "Failed to truncate table: inventory")
}

// SeedTestData seeds the database with test data
func SeedTestData(t *testing.T, db *sql.DB, items []domain.InventoryItem) {
	t.Helper()

	for _, item := range items {
		_, err := db.ExecContext(context.Background(),
			`INSERT INTO inventory (sku, item_name, quantity, warehouse) VALUES ($1, $2, $3, $4)`,
			item.SKU, item.ItemName, item.Quantity, item.Warehouse,
		)
		require.NoError(t, err, "Failed to seed test data")
	}
}

// FetchInventoryRows returns every inventory row ordered by SKU
func FetchInventoryRows(t *testing.T, db *sql.DB) []domain.InventoryItem {
	t.Helper()

	rows, err := db.QueryContext(context.Background(),
		`SELECT sku, item_name, quantity, warehouse FROM inventory ORDER BY sku`)
	require.NoError(t, err)
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		require.NoError(t, rows.Scan(&item.SKU, &item.ItemName, &item.Quantity, &item.Warehouse))
		items = append(items, item)
	}
	require.NoError(t, rows.Err())

	return items
}
