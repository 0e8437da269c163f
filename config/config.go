package config

import (
	"fmt"
	"os"

	"campus-eats-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret []byte
	GinMode   string
	LogLevel  string
}

func Load() Config {
	return Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "campus_eats.db"),
		JWTSecret: []byte(getEnv("JWT_SECRET", "campus_eats_super_secret_2024")),
		GinMode:   os.Getenv("GIN_MODE"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to sqlite and migrates the schema. The returned handle is
// injected into each handler; nothing keeps a package-level copy.
func OpenDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}
