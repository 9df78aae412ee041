package database

import (
	"fmt"
	"log"
	"time"

	"rentora/config"
	"rentora/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	logMode := logger.Warn
	if cfg.AppMode != "production" {
		logMode = logger.Info
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Failed to get generic database object: %v", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established")
}

// Migrate applies the schema for all tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Connection{},
		&domain.Message{},
		&domain.City{},
		&domain.Contact{},
		&domain.Property{},
		&domain.Photo{},
		&domain.Bookmark{},
	)
}

// ClearConnections drops stale connection rows left behind by an unclean
// shutdown. The registry must only contain rows for sockets that are open.
func ClearConnections(db *gorm.DB) error {
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&domain.Connection{}).Error
}

// Close releases the underlying connection pool.
func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
