package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/flavorinthejar/smakosz/backend/config"
	"github.com/flavorinthejar/smakosz/backend/internal/testdb"
	"github.com/flavorinthejar/smakosz/backend/internal/vectorstore"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		VectorBackend: config.BackendSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "nested", "recipes.db"),
	}

	db, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	assert.FileExists(t, cfg.SQLitePath)

	require.NoError(t, RunMigrations(db, "does-not-matter", zap.NewNop()))
	require.NoError(t, RunMigrations(db, "does-not-matter", zap.NewNop()))
	assert.True(t, db.Migrator().HasTable(&vectorstore.Record{}))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(&config.Config{VectorBackend: "chroma"}, zap.NewNop())
	assert.Error(t, err)
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_b.sql", "0001_a.sql", "0001_a_rollback.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}

	files, err := MigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, files)
}

func TestRunMigrationsPostgres(t *testing.T) {
	db := testdb.Postgres(t)

	require.NoError(t, RunMigrations(db, "../../migrations", zap.NewNop()))
	require.NoError(t, RunMigrations(db, "../../migrations", zap.NewNop()))

	assert.True(t, db.Migrator().HasTable("recipes"))
	var applied int64
	require.NoError(t, db.Table("schema_migrations").Count(&applied).Error)
	assert.Equal(t, int64(2), applied)
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient("not a url", zap.NewNop())
	assert.Error(t, err)
}
