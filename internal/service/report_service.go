package service

import (
	"context"
	"errors"
	"io"
	"time"

	"funenglish/internal/catalog"
	"funenglish/internal/report"
)

// ErrEmailDisabled is returned when a report is requested without SES configured
var ErrEmailDisabled = errors.New("email delivery is not configured")

// ReportSender delivers a rendered progress report
type ReportSender interface {
	IsEnabled() bool
	SendProgressReport(ctx context.Context, toEmail string, rows []report.Row, generated time.Time) error
}

// ReportService builds the teacher view from the catalog and current progress
type ReportService struct {
	catalog  *catalog.Catalog
	progress *ProgressService
	sender   ReportSender
	now      func() time.Time
}

// NewReportService creates a new report service. sender may be nil.
func NewReportService(cat *catalog.Catalog, progress *ProgressService, sender ReportSender) *ReportService {
	return &ReportService{
		catalog:  cat,
		progress: progress,
		sender:   sender,
		now:      time.Now,
	}
}

// Rows returns one row per catalog category
func (s *ReportService) Rows() []report.Row {
	return report.Rows(s.catalog, s.progress.Snapshot())
}

// WriteXLSX writes the teacher view as a spreadsheet
func (s *ReportService) WriteXLSX(w io.Writer) error {
	return report.WriteXLSX(w, s.Rows(), s.now())
}

// SendReport emails the teacher view to toEmail
func (s *ReportService) SendReport(ctx context.Context, toEmail string) error {
	if s.sender == nil || !s.sender.IsEnabled() {
		return ErrEmailDisabled
	}
	if toEmail == "" {
		return errors.New("report recipient is required")
	}
	return s.sender.SendProgressReport(ctx, toEmail, s.Rows(), s.now())
}
