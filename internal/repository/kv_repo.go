package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"funenglish/internal/database"
)

// KVEntry is one named record of the key/value store
type KVEntry struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KVRepository stores named string records in the kv_store table
type KVRepository struct {
	db database.DBTX
}

// NewKVRepository creates a new key/value repository
func NewKVRepository(db database.DBTX) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves a record value by name. A missing record is not an error.
func (r *KVRepository) Get(name string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM kv_store WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return value, true, nil
}

// Set inserts or replaces a record
func (r *KVRepository) Set(name, value string) error {
	if _, err := r.db.Exec(r.db.GetDialect().UpsertKV(), name, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Delete removes a record. Deleting a missing record succeeds.
func (r *KVRepository) Delete(name string) error {
	if _, err := r.db.Exec(`DELETE FROM kv_store WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

// UpdatedAt returns when a record was last written
func (r *KVRepository) UpdatedAt(name string) (time.Time, bool, error) {
	var updatedAt sql.NullTime
	err := r.db.QueryRow(`SELECT updated_at FROM kv_store WHERE name = ?`, name).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return updatedAt.Time, updatedAt.Valid, nil
}

// All returns every record ordered by name
func (r *KVRepository) All() ([]KVEntry, error) {
	rows, err := r.db.Query(`SELECT name, value, updated_at FROM kv_store ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var entries []KVEntry
	for rows.Next() {
		var entry KVEntry
		var updatedAt sql.NullTime
		if err := rows.Scan(&entry.Name, &entry.Value, &updatedAt); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			entry.UpdatedAt = updatedAt.Time
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
