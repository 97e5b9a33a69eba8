package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"funenglish/internal/database"
	"funenglish/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string               `json:"version"`
	ExportedAt   time.Time            `json:"exported_at"`
	DatabaseType string               `json:"database_type"`
	Records      []repository.KVEntry `json:"records"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db     *database.DB
	logger logrus.FieldLogger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, logger logrus.FieldLogger) *BackupService {
	return &BackupService{db: db, logger: logger}
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	s.logger.WithField("path", outputPath).Info("Database exported successfully")
	return nil
}

// ExportToWriter writes a complete backup of the database to w
func (s *BackupService) ExportToWriter(w io.Writer) error {
	records, err := repository.NewKVRepository(s.db).All()
	if err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}

	backup := &BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.Name(),
		Records:      records,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.WithField("records", len(records)).Debug("Exported records")
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores records from a backup. Records in the backup
// replace existing records of the same name; others are left alone.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.logger.WithFields(logrus.Fields{
		"version":     backup.Version,
		"exported_at": backup.ExportedAt,
		"records":     len(backup.Records),
	}).Info("Starting database import")

	err := s.db.WithTx(func(tx *database.Tx) error {
		repo := repository.NewKVRepository(tx)
		for _, rec := range backup.Records {
			if rec.Name == "" {
				return errors.New("backup contains a record without a name")
			}
			if err := repo.Set(rec.Name, rec.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import records: %w", err)
	}

	s.logger.Info("Database import completed successfully")
	return nil
}
