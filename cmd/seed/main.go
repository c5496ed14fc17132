package main

import (
	"context" // Root context for the seed run

	"github.com/sirupsen/logrus" // Logrus for structured logging

	"tube_places/internal/config"     // Custom package for configuration
	"tube_places/internal/credential" // Password policy and hashing
	"tube_places/internal/db"         // Store selection
	"tube_places/internal/seed"       // Seed orchestrator
	"tube_places/internal/store"      // Storage contracts
)

// Main resets the database to the baseline dataset
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Password rules, overridable from the environment
	policy, err := credential.NewPolicy(cfg.EmailPattern, cfg.PasswordSymbols, cfg.PasswordMinLength)
	if err != nil {
		logrus.Fatalf("invalid password policy: %v", err)
	}

	orchestrator := &seed.Orchestrator{
		Connect: func(ctx context.Context) (store.Store, error) {
			return db.Connect(ctx, cfg) // Open the configured backend
		},
		Driver:       cfg.StoreDriver,                         // Reported on connection failure
		Policy:       policy,                                  // Validation rules for seeded users
		Hasher:       credential.Hasher{Cost: cfg.BcryptCost}, // Password hashing
		PhaseTimeout: cfg.SeedPhaseTimeout,                    // Optional per-phase deadline
		Log:          logrus.WithField("component", "seed"),   // Progress log
	}

	res, err := orchestrator.Run(context.Background())
	if err != nil {
		logrus.Fatalf("seed failed: %v", err) // Non-zero exit on any phase error
	}
	logrus.WithFields(logrus.Fields{
		"admin_id": res.Admin.ID,      // Seeded administrator
		"user_id":  res.User.ID,       // Seeded standard user
		"stations": len(res.Stations), // Seeded stations
		"places":   len(res.Places),   // Seeded places
	}).Info("Seed completed")
}
