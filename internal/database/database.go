package database

import (
	"dyslexibrowse/internal/config"
	logging "dyslexibrowse/internal/logging"
	"dyslexibrowse/internal/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the local SQLite store and runs migrations. The store lives
// next to the shell; it holds the single profile slot and the session log.
func Init(log *zap.Logger) {
	var err error

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	DB, err = gorm.Open(sqlite.Open(config.Conf.Database.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatal("Failed to open profile store", zap.Error(err))
	}

	log.Info("Profile store opened", zap.String("path", config.Conf.Database.Path))
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	err := DB.AutoMigrate(
		&models.DyslexiaProfile{},
		&models.ReadingSession{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// The improvement queries always scan the log in insertion order.
	sessionIndex := `CREATE INDEX IF NOT EXISTS idx_sessions_created ON reading_sessions (created_at);`
	if err := DB.Exec(sessionIndex).Error; err != nil {
		log.Fatal("Failed to create session log index", zap.Error(err))
	}
}
