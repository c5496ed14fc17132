package db

import (
	"context" // Close context

	"github.com/sirupsen/logrus" // Logging library

	"tube_places/internal/config"          // Application configuration
	"tube_places/internal/store/gormstore" // MySQL storage
)

// Migrate performs automatic migration for the MySQL schema
func Migrate(cfg *config.Config) {
	db, err := OpenMySQL(cfg) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	st := gormstore.New(db)
	defer func() { _ = st.Close(context.Background()) }()
	// AutoMigrate will create tables, missing columns and indexes
	if err := st.Migrate(); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
