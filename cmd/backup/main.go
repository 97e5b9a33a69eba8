package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"funenglish/internal/catalog"
	"funenglish/internal/config"
	"funenglish/internal/database"
	"funenglish/internal/logging"
	"funenglish/internal/progress"
	"funenglish/internal/repository"
	"funenglish/internal/service"
)

var rootCmd = &cobra.Command{
	Use:           "backup",
	Short:         "Fun English maintenance tool",
	Long:          "Inspect, export, import and reset stored progress, export the teacher report and manage the speech cache.",
	SilenceUsage:  true,
}

// app is everything a subcommand needs, built from the server configuration
type app struct {
	cfg    *config.Config
	db     *database.DB
	logger *logrus.Logger
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(database.Options{
		Type: cfg.DatabaseType,
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		return nil, err
	}

	// Run migrations to ensure schema is up to date
	if _, err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return &app{cfg: cfg, db: db, logger: logger}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) persistence() *progress.Persistence {
	return progress.NewPersistence(repository.NewKVRepository(a.db), a.cfg.ProgressKey, catalog.Default().Has, a.logger)
}

func (a *app) progressService() *service.ProgressService {
	return service.NewProgressService(a.persistence(), a.logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
