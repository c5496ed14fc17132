// Package db opens the storage backend selected by configuration.
package db

import (
	"context" // Connection deadlines
	"fmt"     // Error formatting

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
	"gorm.io/gorm/logger"  // GORM log levels

	"tube_places/internal/config"           // Application configuration
	"tube_places/internal/domain"           // Domain errors
	"tube_places/internal/store"            // Storage contracts
	"tube_places/internal/store/gormstore"  // MySQL storage
	"tube_places/internal/store/memstore"   // In-process storage
	"tube_places/internal/store/mongostore" // MongoDB storage
)

// Supported STORE_DRIVER values
const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// OpenMySQL opens a gorm connection and verifies it with a ping
func OpenMySQL(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn // Only slow queries and errors
	if !cfg.IsProd {
		level = logger.Info
	}
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{
		TranslateError: true,                          // Surface duplicate keys as gorm.ErrDuplicatedKey
		Logger:         logger.Default.LogMode(level), // GORM query logging
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Connect opens the configured store. Failures are reported as *domain.ConnectionError.
func Connect(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case DriverMySQL:
		db, err := OpenMySQL(cfg)
		if err != nil {
			return nil, &domain.ConnectionError{Driver: DriverMySQL, Err: err}
		}
		st := gormstore.New(db)
		// Keep the schema current before anything writes
		if err := st.Migrate(); err != nil {
			_ = st.Close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return st, nil
	case DriverMongo:
		st, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, &domain.ConnectionError{Driver: DriverMongo, Err: err}
		}
		return st, nil
	case DriverMemory:
		return memstore.New(), nil
	default:
		return nil, &domain.ConnectionError{Driver: cfg.StoreDriver, Err: fmt.Errorf("unknown store driver %q", cfg.StoreDriver)}
	}
}
