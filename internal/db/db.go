package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/gofrs/flock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ctxtimer/ctt/internal/models"
)

// schemaVersion is bumped whenever a migration adds to the schema.
// Migrations are additive only, so older rows stay readable.
const schemaVersion = 1

var (
	DB       *gorm.DB
	instance *flock.Flock
)

// Initialize sets up the database connection at the default per-user path
// and runs migrations
func Initialize() error {
	dbPath, err := getDatabasePath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	return InitializeAt(dbPath)
}

// InitializeAt opens the database at dbPath, takes the single-instance lock
// and runs migrations. Used directly by tests.
func InitializeAt(dbPath string) error {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// One process owns the database at a time
	lock := flock.New(filepath.Join(filepath.Dir(dbPath), "ctt.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		lock.Unlock()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	instance = lock

	if err := runMigrations(); err != nil {
		Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// getDatabasePath returns the path to the SQLite database file
func getDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "ctt", "ctt.db"), nil
}

// runMigrations creates/updates the database schema and records the schema
// version. A version newer than this binary understands is fatal; the user
// is asked to back up rather than let us guess at unknown columns.
func runMigrations() error {
	if DB.Migrator().HasTable(&models.Setting{}) {
		stored, err := GetSetting(models.SettingSchemaVersion)
		if err == nil && stored != "" {
			v, convErr := strconv.Atoi(stored)
			if convErr == nil && v > schemaVersion {
				return fmt.Errorf("%w (database v%d, binary v%d): back up the database file and recreate it",
					ErrSchemaTooNew, v, schemaVersion)
			}
		}
	}

	if err := DB.AutoMigrate(
		&models.Task{},
		&models.Session{},
		&models.ContextSwitch{},
		&models.Setting{},
	); err != nil {
		return err
	}

	return SetSetting(models.SettingSchemaVersion, strconv.Itoa(schemaVersion))
}

// Close closes the database connection and releases the instance lock
func Close() error {
	if instance != nil {
		instance.Unlock()
		instance = nil
	}
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		DB = nil
		return sqlDB.Close()
	}
	return nil
}
