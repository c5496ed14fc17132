package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string // Application port
	StoreDriver string // Storage backend: mysql, mongo or memory
	DBUser      string // Database user
	DBPassword  string // Database password
	DBHost      string // Database host
	DBPort      string // Database port
	DBName      string // Database name
	MongoURI    string // MongoDB connection string
	MongoDB     string // MongoDB database name
	JWTSecret   string // JWT secret key
	RedisAddr   string // Redis server address, empty disables caching
	RedisPass   string // Redis password
	RedisDB     int    // Redis database number
	IsProd      bool   // Is production environment
	LogLevel    string // Logrus level name

	SeedPhaseTimeout time.Duration // Per-phase timeout of the seed, 0 means none

	EmailPattern      string // Overrides the email shape regex
	PasswordSymbols   string // Overrides the allowed password symbol set
	PasswordMinLength int    // Overrides the minimum password length
	BcryptCost        int    // bcrypt work factor, 0 means bcrypt.DefaultCost
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	minLen, _ := strconv.Atoi(os.Getenv("PASSWORD_MIN_LENGTH"))
	cost, _ := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	timeout, _ := time.ParseDuration(os.Getenv("SEED_PHASE_TIMEOUT"))
	return &Config{
		AppPort:           getenv("APP_PORT", "8080"),                       // Application port
		StoreDriver:       getenv("STORE_DRIVER", "mysql"),                  // Storage backend
		DBUser:            os.Getenv("DB_USER"),                             // Database user
		DBPassword:        os.Getenv("DB_PASSWORD"),                         // Database password
		DBHost:            getenv("DB_HOST", "127.0.0.1"),                   // Database host
		DBPort:            getenv("DB_PORT", "3306"),                        // Database port
		DBName:            os.Getenv("DB_NAME"),                             // Database name
		MongoURI:          getenv("MONGO_URI", "mongodb://localhost:27017"), // MongoDB URI
		MongoDB:           getenv("MONGO_DB", "tube_places"),                // MongoDB database
		JWTSecret:         os.Getenv("JWT_SECRET"),                          // JWT secret key
		RedisAddr:         os.Getenv("REDIS_ADDR"),                          // Redis server address
		RedisPass:         os.Getenv("REDIS_PASS"),                          // Redis password
		RedisDB:           redisDB,                                          // Redis database number
		IsProd:            os.Getenv("IS_PROD") == "true",                   // Is production environment
		LogLevel:          getenv("LOG_LEVEL", "info"),                      // Log level
		SeedPhaseTimeout:  timeout,                                          // Seed phase timeout
		EmailPattern:      os.Getenv("EMAIL_PATTERN"),                       // Email regex override
		PasswordSymbols:   os.Getenv("PASSWORD_SYMBOLS"),                    // Symbol set override
		PasswordMinLength: minLen,                                           // Minimum length override
		BcryptCost:        cost,                                             // bcrypt cost
	}
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getenv returns the variable or a fallback when unset
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
