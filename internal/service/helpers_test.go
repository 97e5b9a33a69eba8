package service

import (
	"sync"

	"funenglish/internal/catalog"
	"funenglish/internal/logging"
	"funenglish/internal/progress"
)

type memoryStorage struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{values: make(map[string]string)}
}

func (m *memoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func newTestProgressService(storage progress.Storage) *ProgressService {
	p := progress.NewPersistence(storage, progress.DefaultKey, catalog.Default().Has, logging.Discard())
	return NewProgressService(p, logging.Discard())
}
