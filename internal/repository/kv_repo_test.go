package repository

import (
	"path/filepath"
	"testing"

	"funenglish/internal/database"
)

func setupKVRepository(t *testing.T) (*KVRepository, *database.DB) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return NewKVRepository(db), db
}

func TestKVRepositoryGetMissing(t *testing.T) {
	repo, _ := setupKVRepository(t)

	value, ok, err := repo.Get("lg_english_progress_v1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || value != "" {
		t.Errorf("Get() = %q, %v; want empty, false", value, ok)
	}
}

func TestKVRepositorySetReplaces(t *testing.T) {
	repo, _ := setupKVRepository(t)

	if err := repo.Set("progress", `{"Colors":{"score":3,"total":5}}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := repo.Set("progress", `{"Colors":{"score":5,"total":5}}`); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}

	value, ok, err := repo.Get("progress")
	if err != nil || !ok {
		t.Fatalf("Get() = %q, %v, %v", value, ok, err)
	}
	if value != `{"Colors":{"score":5,"total":5}}` {
		t.Errorf("Get() = %q, want the second value", value)
	}

	entries, err := repo.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("All() returned %d entries, want 1", len(entries))
	}

	if _, ok, err := repo.UpdatedAt("progress"); err != nil || !ok {
		t.Errorf("UpdatedAt() = %v, %v; want a timestamp", ok, err)
	}
}

func TestKVRepositoryDelete(t *testing.T) {
	repo, _ := setupKVRepository(t)

	if err := repo.Set("progress", "{}"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := repo.Delete("progress"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := repo.Get("progress"); ok {
		t.Error("record should be gone after Delete()")
	}

	// Deleting again is fine
	if err := repo.Delete("progress"); err != nil {
		t.Errorf("Delete() of missing record error = %v", err)
	}
}

func TestKVRepositoryInTransaction(t *testing.T) {
	repo, db := setupKVRepository(t)

	err := db.WithTx(func(tx *database.Tx) error {
		txRepo := NewKVRepository(tx)
		if err := txRepo.Set("a", "1"); err != nil {
			return err
		}
		return txRepo.Set("b", "2")
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	entries, err := repo.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "a" || entries[1].Name != "b" {
		t.Errorf("All() = %+v, want a and b", entries)
	}
}
