package database

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/flavorinthejar/smakosz/backend/internal/vectorstore"
)

// RollbackSuffix marks the down migration paired with an up migration.
const RollbackSuffix = "_rollback.sql"

// MigrationFiles lists the up migrations of dir in the order they apply.
func MigrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, RollbackSuffix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// RunMigrations prepares the recipes table. Postgres applies the SQL files
// of migrationsDir that have not been applied yet and falls back to GORM
// auto-migration when the directory does not exist; sqlite always uses
// auto-migration.
func RunMigrations(db *gorm.DB, migrationsDir string, log *zap.Logger) error {
	if db.Dialector.Name() != "postgres" {
		log.Info("using GORM auto-migration", zap.String("dialect", db.Dialector.Name()))
		return vectorstore.AutoMigrate(db)
	}

	files, err := MigrationFiles(migrationsDir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("migrations directory not found, using GORM auto-migration", zap.String("dir", migrationsDir))
		return vectorstore.AutoMigrate(db)
	}
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, name := range files {
		version := strings.SplitN(name, "_", 2)[0]

		var count int64
		if err := db.Table("schema_migrations").Where("version = ?", version).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug("skipping applied migration", zap.String("migration", name))
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", version, name).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Info("applied migration", zap.String("migration", name))
	}

	return nil
}
