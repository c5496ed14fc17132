package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"tube_places/internal/store"
	"tube_places/internal/store/storetest"
)

// setupTestDB connects to MONGO_TEST_URI and empties the collections, or skips
func setupTestDB(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := Connect(ctx, uri, "tube_places_test")
	if err != nil {
		t.Skipf("Failed to connect to test database: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Failed to clean up collections: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return setupTestDB(t) })
}
