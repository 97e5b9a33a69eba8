package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

const scheduledReportTimeout = 30 * time.Second

// Reporter sends the progress report
type Reporter interface {
	SendReport(ctx context.Context, toEmail string) error
}

// ReportScheduler emails the progress report on a cron schedule
type ReportScheduler struct {
	scheduler *gocron.Scheduler
	reporter  Reporter
	schedule  string
	toEmail   string
	logger    logrus.FieldLogger
}

// NewReportScheduler creates a scheduler for the cron expression schedule
func NewReportScheduler(schedule, toEmail string, reporter Reporter, logger logrus.FieldLogger) *ReportScheduler {
	return &ReportScheduler{
		scheduler: gocron.NewScheduler(time.Local),
		reporter:  reporter,
		schedule:  schedule,
		toEmail:   toEmail,
		logger:    logger,
	}
}

// Start registers the report job and runs the scheduler in the background
func (s *ReportScheduler) Start() error {
	if _, err := s.scheduler.Cron(s.schedule).Do(s.sendReport); err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", s.schedule, err)
	}
	s.scheduler.StartAsync()

	_, next := s.scheduler.NextRun()
	s.logger.WithFields(logrus.Fields{
		"schedule": s.schedule,
		"to":       s.toEmail,
		"next_run": next,
	}).Info("Report scheduler started")
	return nil
}

// Stop terminates the scheduler
func (s *ReportScheduler) Stop() {
	s.scheduler.Stop()
}

// sendReport is the scheduled job
func (s *ReportScheduler) sendReport() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledReportTimeout)
	defer cancel()

	if err := s.reporter.SendReport(ctx, s.toEmail); err != nil {
		s.logger.WithError(err).WithField("to", s.toEmail).Error("Scheduled progress report failed")
		return
	}
	s.logger.WithField("to", s.toEmail).Info("Scheduled progress report sent")
}
