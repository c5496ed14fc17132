package main

import (
	"context" // context package is needed for Redis and store operations
	"time"    // Shutdown deadline

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging

	"tube_places/internal/api"        // Custom package for API handlers
	"tube_places/internal/config"     // Custom package for configuration
	"tube_places/internal/credential" // Credential model
	"tube_places/internal/db"         // Store selection
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the configured store
	st, err := db.Connect(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to store: %v", err) // Fatal error if store connection fails
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = st.Close(ctx)
	}()

	// Setup Redis client, optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	// Password rules, overridable from the environment
	policy, err := credential.NewPolicy(cfg.EmailPattern, cfg.PasswordSymbols, cfg.PasswordMinLength)
	if err != nil {
		logrus.Fatalf("invalid password policy: %v", err)
	}
	credentials := credential.NewService(st, policy, credential.Hasher{Cost: cfg.BcryptCost})

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Deps{
		Store:       st,            // Storage backend
		Credentials: credentials,   // User service
		Redis:       redisClient,   // Read cache
		JWTSecret:   cfg.JWTSecret, // Token signing key
	})

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,     // Listen port
		"driver": cfg.StoreDriver, // Store backend
	}).Info("Server running") // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Errorf("server stopped: %v", err)
	}
}
