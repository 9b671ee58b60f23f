package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"waitlist-service/internal/observability"

	"github.com/jmoiron/sqlx"
)

// TestDB wraps a test database instance
type TestDB struct {
	db     *sqlx.DB
	logger *observability.Logger
	Store  Store
}

// SetupTestDB connects to the PostgreSQL instance named by the TEST_DB_*
// variables and applies the embedded migrations. Tests are skipped when
// TEST_DB_HOST is not set.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		t.Skip("TEST_DB_HOST not set, skipping database test")
	}

	dbPort := getEnvOrDefault("TEST_DB_PORT", "5432")
	dbUser := getEnvOrDefault("TEST_DB_USER", "waitlist_user")
	dbPass := getEnvOrDefault("TEST_DB_PASSWORD", "waitlist_password")
	dbName := getEnvOrDefault("TEST_DB_NAME", "waitlist_test")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	logger := observability.NewLogger()
	store, err := New(connStr, 5, logger)
	if err != nil {
		t.Fatalf("failed to setup test database: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}
	if _, err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{
		db:     store.db,
		logger: logger,
		Store:  store,
	}
}

// Truncate clears all data from tables while preserving schema
func (tdb *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()

	if len(tables) == 0 {
		tables = []string{"email_otps", "waitlist_entries"}
	}

	for _, table := range tables {
		if _, err := tdb.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
