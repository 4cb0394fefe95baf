package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"driver_dispatch/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB loads .env (if present), connects to Postgres via GORM and migrates
// every dispatch model.
func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	host := Env("DB_HOST", "localhost")
	port := Env("DB_PORT", "5432")
	user := Env("DB_USER", "postgres")
	password := Env("DB_PASSWORD", "password")
	dbname := Env("DB_NAME", "dispatch")
	sslmode := Env("DB_SSLMODE", "disable")
	timezone := Env("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Driver{},
		&models.Restaurant{},
		&models.Order{},
		&models.DispatchScore{},
		&models.DeliveryAssignment{},
		&models.Notification{},
		&models.PricingPolicy{},
		&models.SurgeRule{},
		&models.DriverLocationHistory{},
	)
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	DB = db
}

// Env reads an environment variable or returns the provided default
func Env(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// EnvFloat reads a float environment variable, falling back on parse failure
func EnvFloat(key string, defaultValue float64) float64 {
	if v, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
