package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"waitlist-service/internal/observability"

	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"
)

var ErrNotFound = errors.New("not found")

const migrationDialect = "postgres"

//go:embed sql
var migrations embed.FS

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

func New(connectionString string, maxOpenConns int, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open("pgx", connectionString)
	if err != nil {
		return Store{}, fmt.Errorf("failed to open database: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns / 2)
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	return Store{db: db, logger: logger}, nil
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func migrationSource() *migrate.EmbedFileSystemMigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations,
		Root:       "sql",
	}
}

// Migrate applies all pending embedded migrations.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	return s.runMigrations(ctx, migrate.Up, 0)
}

// MigrateDown rolls back the most recent migration.
func (s *Store) MigrateDown(ctx context.Context) (int, error) {
	return s.runMigrations(ctx, migrate.Down, 1)
}

func (s *Store) runMigrations(ctx context.Context, direction migrate.MigrationDirection, max int) (int, error) {
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := migrate.ExecMax(s.db.DB, migrationDialect, migrationSource(), direction, max)
		done <- result{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("migration timeout: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return res.n, fmt.Errorf("db migrations have failed: %w", res.err)
		}
		s.logger.Info(observability.WithFields(ctx,
			observability.Field{Key: "count", Value: res.n},
			observability.Field{Key: "direction", Value: directionName(direction)},
		), "applied migrations")
		return res.n, nil
	}
}

func directionName(d migrate.MigrationDirection) string {
	if d == migrate.Down {
		return "down"
	}
	return "up"
}
