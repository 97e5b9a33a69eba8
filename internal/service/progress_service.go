package service

import (
	"sync"

	"github.com/sirupsen/logrus"

	"funenglish/internal/models"
	"funenglish/internal/progress"
)

// ProgressService owns the in-memory progress store. Every change goes
// through it, so read-modify-write happens as one step under its lock.
//
// The persisted record is re-read before each read or write, so a reset or
// import made by the maintenance tool is picked up instead of being
// overwritten. While an earlier write has failed the in-memory store is
// the newer copy and is kept as is.
type ProgressService struct {
	mu          sync.Mutex
	persistence *progress.Persistence
	store       progress.Store
	unsaved     bool
	logger      logrus.FieldLogger
}

// NewProgressService loads the persisted store
func NewProgressService(persistence *progress.Persistence, logger logrus.FieldLogger) *ProgressService {
	return &ProgressService{
		persistence: persistence,
		store:       persistence.Load(),
		logger:      logger,
	}
}

// Snapshot returns a copy of the current store
func (s *ProgressService) Snapshot() progress.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	return s.store.Clone()
}

// Record merges a result and writes the whole store back. On a write
// failure the in-memory store keeps the new result and the error wraps
// progress.ErrPersistenceFailure.
func (s *ProgressService) Record(rec models.ProgressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh()
	s.store = progress.RecordResult(s.store, rec)
	if err := s.persistence.Persist(s.store); err != nil {
		s.unsaved = true
		s.logger.WithError(err).WithField("category", rec.Category).Error("Failed to save progress")
		return err
	}
	s.unsaved = false

	s.logger.WithFields(logrus.Fields{
		"category": rec.Category,
		"score":    rec.Score,
		"total":    rec.Total,
	}).Info("Progress saved")
	return nil
}

// Reset clears persisted and in-memory progress
func (s *ProgressService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.persistence.Reset()
	s.store = store
	if err != nil {
		s.unsaved = true
		s.logger.WithError(err).Error("Failed to clear progress")
		return err
	}
	s.unsaved = false
	s.logger.WithField("key", s.persistence.Key()).Info("Progress reset")
	return nil
}

// refresh replaces the in-memory store with the persisted one. It keeps the
// current store when a write is pending or the record cannot be read.
// Callers hold s.mu.
func (s *ProgressService) refresh() {
	if s.unsaved {
		return
	}
	store, err := s.persistence.Read()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to re-read progress, using cached copy")
		return
	}
	s.store = store
}
