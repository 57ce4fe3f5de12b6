// Package testfixtures builds throwaway stores for package tests.
package testfixtures

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nyaysathi/core/internal/infrastructure/config"
	"github.com/nyaysathi/core/internal/infrastructure/database"
)

// NewSQLiteDB opens a migrated sqlite database in a temporary directory.
// The database is closed when the test ends.
func NewSQLiteDB(tb testing.TB) *database.DB {
	tb.Helper()

	cfg := config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		SQLitePath:      filepath.Join(tb.TempDir(), "test.db"),
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Hour,
	}

	db, err := database.New(cfg)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	if _, err := db.MigrateUp(); err != nil {
		tb.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
