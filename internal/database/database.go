package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipe-robot/backend/internal/model"
)

// Dialect identifies the storage backend behind a DB
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

const memoryPath = ":memory:"

// DB represents the database connection
type DB struct {
	*gorm.DB
	dialect Dialect
	// path is the SQLite file backing the store, empty for in-memory and PostgreSQL
	path string
	log  *zap.Logger
}

// New opens the database named by databaseURL. postgres:// and postgresql://
// URLs select PostgreSQL; sqlite:///path, a bare path or :memory: select SQLite.
func New(databaseURL string, log *zap.Logger) (*DB, error) {
	log = log.Named("database")
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	db := &DB{log: log}
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		db.dialect = Postgres
		dialector = postgres.Open(databaseURL)
	default:
		db.dialect = SQLite
		path := sqlitePath(databaseURL)
		if path != memoryPath {
			db.path = path
		}
		dialector = sqlite.Open(path)
	}

	log.Info("Connecting to database", zap.String("dialect", string(db.dialect)), zap.String("path", db.path))

	gdb, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db.DB = gdb

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting connection pool: %w", err)
	}
	if db.dialect == SQLite && db.path == "" {
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Info("Successfully connected to database")
	return db, nil
}

func sqlitePath(databaseURL string) string {
	path := strings.TrimPrefix(databaseURL, "sqlite://")
	// sqlite:///database.db is relative, sqlite:////tmp/database.db is absolute
	if path != databaseURL {
		path = strings.TrimPrefix(path, "/")
	}
	if path == "" {
		return memoryPath
	}
	return path
}

// Dialect returns the backend in use
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Path returns the SQLite database file, empty when there is none
func (db *DB) Path() string {
	return db.path
}

// Recreate drops any leftover foods table and creates an empty one. The store
// is ephemeral, so rows from a previous run that did not shut down cleanly
// must not be imported twice.
func (db *DB) Recreate(ctx context.Context) error {
	m := db.WithContext(ctx).Migrator()
	if m.HasTable(&model.Food{}) {
		db.log.Info("Dropping leftover foods table")
		if err := m.DropTable(&model.Food{}); err != nil {
			return fmt.Errorf("failed to drop foods table: %w", err)
		}
	}
	if err := m.AutoMigrate(&model.Food{}); err != nil {
		return fmt.Errorf("failed to create foods table: %w", err)
	}
	return nil
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Reset discards every ingredient and releases the backing resource: the
// SQLite file is deleted, the PostgreSQL table is dropped, and the pool is
// closed. A resource that is already gone is logged, not reported.
func (db *DB) Reset(ctx context.Context) error {
	var errs []error

	if db.dialect == Postgres {
		m := db.WithContext(ctx).Migrator()
		if m.HasTable(&model.Food{}) {
			if err := m.DropTable(&model.Food{}); err != nil {
				errs = append(errs, fmt.Errorf("failed to drop foods table: %w", err))
			} else {
				db.log.Info("Foods table dropped")
			}
		} else {
			db.log.Info("Foods table does not exist")
		}
	}

	if sqlDB, err := db.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if db.dialect == SQLite && db.path != "" {
		switch err := os.Remove(db.path); {
		case err == nil:
			db.log.Info("Database file deleted successfully", zap.String("path", db.path))
		case errors.Is(err, fs.ErrNotExist):
			db.log.Info("Database file does not exist", zap.String("path", db.path))
		default:
			errs = append(errs, fmt.Errorf("error deleting database file: %w", err))
		}
	}

	return errors.Join(errs...)
}
