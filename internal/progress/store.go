package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"funenglish/internal/models"
)

// DefaultKey names the persisted progress record
const DefaultKey = "lg_english_progress_v1"

// ErrPersistenceFailure is returned when the progress record cannot be written or cleared
var ErrPersistenceFailure = errors.New("progress could not be saved")

// Store maps a category name to its latest result. A category with no entry
// has not been attempted yet. Stores are treated as values: RecordResult
// returns a new Store and leaves its argument untouched.
type Store map[string]models.ProgressRecord

// Get returns the record for a category
func (s Store) Get(category string) (models.ProgressRecord, bool) {
	rec, ok := s[category]
	return rec, ok
}

// Categories returns the attempted categories sorted by name
func (s Store) Categories() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the store
func (s Store) Clone() Store {
	out := make(Store, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// RecordResult returns a copy of store with the record's category replaced
func RecordResult(store Store, rec models.ProgressRecord) Store {
	next := store.Clone()
	next[rec.Category] = rec
	return next
}

// Decode parses a persisted progress record. Malformed input yields an
// empty store. Entries for categories rejected by known, or with
// implausible values, are dropped individually.
func Decode(data string, known func(string) bool) Store {
	store := Store{}
	if data == "" {
		return store
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return store
	}

	for category, body := range raw {
		if known != nil && !known(category) {
			continue
		}
		var rec models.ProgressRecord
		if err := json.Unmarshal(body, &rec); err != nil {
			continue
		}
		if !rec.Valid() {
			continue
		}
		rec.Category = category
		store[category] = rec
	}
	return store
}

// Encode serializes the store as a category to {score, total, date} object
func Encode(store Store) (string, error) {
	data, err := json.Marshal(map[string]models.ProgressRecord(store))
	if err != nil {
		return "", fmt.Errorf("failed to encode progress: %w", err)
	}
	return string(data), nil
}

// Storage is the key/value backend holding the progress record
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Persistence is the single I/O boundary between a Store and its backing storage
type Persistence struct {
	storage Storage
	key     string
	known   func(string) bool
	logger  logrus.FieldLogger
}

// NewPersistence creates a Persistence for the record named key.
// known filters category names on load; nil accepts any name.
func NewPersistence(storage Storage, key string, known func(string) bool, logger logrus.FieldLogger) *Persistence {
	if key == "" {
		key = DefaultKey
	}
	return &Persistence{storage: storage, key: key, known: known, logger: logger}
}

// Key returns the name of the persisted record
func (p *Persistence) Key() string {
	return p.key
}

// Load reads the persisted store. It never fails: a missing, unreadable or
// malformed record loads as an empty store.
func (p *Persistence) Load() Store {
	store, err := p.Read()
	if err != nil {
		p.logger.WithError(err).WithField("key", p.key).Warn("failed to read progress, starting empty")
		return Store{}
	}
	return store
}

// Read is Load without the fallback: a storage error is returned so the
// caller can keep what it already holds. A missing or malformed record
// still reads as an empty store.
func (p *Persistence) Read() (Store, error) {
	value, ok, err := p.storage.Get(p.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}
	if !ok {
		return Store{}, nil
	}

	store := Decode(value, p.known)
	p.logger.WithFields(logrus.Fields{"key": p.key, "categories": len(store)}).Debug("loaded progress")
	return store, nil
}

// Persist writes the whole store, replacing the previous record
func (p *Persistence) Persist(store Store) error {
	value, err := Encode(store)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	if err := p.storage.Set(p.key, value); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return nil
}

// Reset deletes the persisted record. The returned store is always empty,
// even when the delete fails.
func (p *Persistence) Reset() (Store, error) {
	if err := p.storage.Delete(p.key); err != nil {
		return Store{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return Store{}, nil
}
