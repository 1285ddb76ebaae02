package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/testpick/testpick-api/config"
	"github.com/testpick/testpick-api/pkg/db"
	"github.com/testpick/testpick-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: "testpick-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting database migrations",
		zap.String("database", maskDatabaseURL(cfg.Database.URL)))

	if err := db.RunMigrations(cfg.Database.URL, "file://migrations"); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}

// maskDatabaseURL masks the credentials in a database URL for logging
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:20] + "***"
	}
	return "***"
}
