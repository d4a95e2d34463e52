package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../migrations"

func TestMigrationFilesExist(t *testing.T) {
	expectedFiles := []string{
		"000001_initial_schema.up.sql",
		"000001_initial_schema.down.sql",
	}

	for _, filename := range expectedFiles {
		_, err := os.Stat(filepath.Join(migrationsDir, filename))
		assert.NoError(t, err, "migration file %s should exist", filename)
	}
}

func TestInitialSchema_Tables(t *testing.T) {
	up, err := os.ReadFile(filepath.Join(migrationsDir, "000001_initial_schema.up.sql"))
	require.NoError(t, err)
	down, err := os.ReadFile(filepath.Join(migrationsDir, "000001_initial_schema.down.sql"))
	require.NoError(t, err)

	for _, table := range []string{"users", "profiles", "mentorship_requests", "sessions"} {
		assert.Contains(t, string(up), "CREATE TABLE "+table)
		assert.Contains(t, string(down), "DROP TABLE IF EXISTS "+table)
	}

	// dependent rows must go away with their user
	assert.GreaterOrEqual(t, strings.Count(string(up), "ON DELETE CASCADE"), 5)
}

func TestRunMigrations_EmptyURL(t *testing.T) {
	err := RunMigrations("", "", "file://"+migrationsDir)
	assert.ErrorIs(t, err, ErrEmptyDatabaseURL)
}

func TestConfigureTLS(t *testing.T) {
	cfg, err := configureTLS("postgres://localhost/mentoapp", "")
	assert.NoError(t, err)
	assert.Nil(t, cfg)

	cfg, err = configureTLS("postgres://db/mentoapp?sslmode=verify-full", "")
	assert.NoError(t, err)
	assert.Nil(t, cfg, "no CA path configured")

	_, err = configureTLS("postgres://db/mentoapp?sslmode=verify-full", filepath.Join(t.TempDir(), "missing.crt"))
	assert.Error(t, err)
}
