package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"funenglish/internal/audio"
	"funenglish/internal/catalog"
	"funenglish/internal/config"
	"funenglish/internal/database"
	"funenglish/internal/handlers"
	"funenglish/internal/logging"
	"funenglish/internal/progress"
	"funenglish/internal/quiz"
	"funenglish/internal/repository"
	"funenglish/internal/security"
	"funenglish/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(database.Options{
		Type: cfg.DatabaseType,
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.WithField("type", db.Dialect.Name()).Info("Database connection established")

	applied, err := db.RunMigrations()
	if err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}
	for _, name := range applied {
		logger.WithField("migration", name).Info("Migration completed")
	}

	cat := catalog.Default()

	// Initialize progress storage
	kvRepo := repository.NewKVRepository(db)
	persistence := progress.NewPersistence(kvRepo, cfg.ProgressKey, cat.Has, logger)

	// Initialize services
	progressService := service.NewProgressService(persistence, logger)
	generator := quiz.NewGenerator(cat, quiz.NewTimeSource())
	quizService := service.NewQuizService(generator, progressService, logger)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize email service")
	}
	reportService := service.NewReportService(cat, progressService, emailService)

	speaker, err := newSpeaker(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize speech")
	}

	teacherAuth, err := security.NewTeacherAuth(cfg.TeacherPIN, cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize teacher auth")
	}
	if !teacherAuth.Enabled() {
		logger.Warn("TEACHER_PIN not set: teacher routes are open")
	} else if cfg.TokenSecret == "" {
		logger.Warn("TOKEN_SECRET not set: teacher tokens will not survive a restart")
	}

	limiter := security.NewRateLimiter(cfg.SpeakRateLimit, cfg.SpeakRateWindow)
	defer limiter.Stop()

	var scheduler *service.ReportScheduler
	if cfg.ReportSchedule != "" {
		scheduler = service.NewReportScheduler(cfg.ReportSchedule, cfg.ReportEmail, reportService, logger)
		if err := scheduler.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start report scheduler")
		}
		defer scheduler.Stop()
	}

	audioDir := ""
	if cfg.SpeechEnabled {
		audioDir = cfg.AudioDir
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Catalog:    handlers.NewCatalogHandler(cat, progressService, logger),
		Quiz:       handlers.NewQuizHandler(quizService, logger),
		Speech:     handlers.NewSpeechHandler(speaker, handlers.AudioURLPrefix, logger),
		Teacher:    handlers.NewTeacherHandler(teacherAuth, reportService, progressService, cfg.ReportEmail, logger),
		Auth:       teacherAuth,
		Limiter:    limiter,
		AudioDir:   audioDir,
		Origins:    cfg.AllowedOrigins(),
		Logger:     logger,
		TrustProxy: cfg.TrustProxy,
	})

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
	logger.Info("Server stopped")
}

func newSpeaker(cfg *config.Config, logger logrus.FieldLogger) (audio.Speaker, error) {
	if !cfg.SpeechEnabled {
		logger.Info("Speech disabled")
		return audio.NoopSpeaker{}, nil
	}
	return audio.NewTTSService(cfg.AudioDir,
		audio.WithLanguage(cfg.SpeechLanguage),
		audio.WithRate(cfg.SpeechRate),
		audio.WithLogger(logger),
	)
}
