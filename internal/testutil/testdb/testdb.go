// Package testdb opens an isolated in-memory SQLite database for tests.
package testdb

import (
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	seq     atomic.Int64
	unsafeC = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// Open returns a fresh database with models migrated. The pool is pinned to
// one connection, so code under test must use the tx handed to it inside a
// transaction.
func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	name := unsafeC.ReplaceAllString(t.Name(), "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return db
}
