package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/bloomworks/bloom-practice/internal/store"
	"github.com/bloomworks/bloom-practice/internal/store/storetest"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "practice.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db)
}

func TestSQLiteStoreCompliance(t *testing.T) {
	storetest.Run(t, newTestStore)
}
