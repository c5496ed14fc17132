package gormstore

import (
	"context"
	"os"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tube_places/internal/store"
	"tube_places/internal/store/storetest"
)

// setupTestDB connects to MYSQL_TEST_DSN and empties the tables, or skips
func setupTestDB(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("Failed to connect to test database: %v", err)
	}

	s := New(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("Failed to clean up tables: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return setupTestDB(t) })
}
