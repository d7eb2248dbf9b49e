package config

import (
	"errors"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresDB is the connection to the club's Supabase Postgres. Tables and
// their row-level policies are owned by the backend project; this service
// only reads and writes through them.
var PostgresDB *gorm.DB

func InitPostgres() error {
	uri := os.Getenv("SUPABASE_DB_URI")
	if uri == "" {
		uri = os.Getenv("POSTGRES_URI")
	}
	if uri == "" {
		return errors.New("SUPABASE_DB_URI (or POSTGRES_URI) environment variable is not set")
	}
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// Connection Pooling settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	PostgresDB = db
	return nil
}
