package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/bloomworks/bloom-practice/internal/store"
	"github.com/bloomworks/bloom-practice/internal/store/storetest"
)

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	dsn := os.Getenv("PRACTICE_BACKEND_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PRACTICE_BACKEND_POSTGRES_DSN not set; skipping postgres store integration test")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db)
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
