package main

import (
	"tube_places/internal/config" // Custom import path (Config)
	"tube_places/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg)            // Create or update the MySQL tables
}
