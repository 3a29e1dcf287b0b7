// Package testutil provides shared helpers for package-level tests.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/voterbowl/backend/internal/repository/dao"
)

// OpenTestDB opens a fresh in-memory sqlite database with all tables
// migrated. Each call returns an isolated database, so tests can run in
// parallel without sharing state.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err = dao.InitTables(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
