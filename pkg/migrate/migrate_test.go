package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/angelmondragon/kitchenboard/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRunUpAndDownOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	require.NoError(t, Run(ctx, sqlDB, "sqlite", "up"))
	assert.True(t, conn.Migrator().HasTable("print_tickets"))

	version, err := Version(ctx, sqlDB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(20261016120000), version)

	require.NoError(t, Run(ctx, sqlDB, "sqlite", "down"))
	assert.False(t, conn.Migrator().HasTable("print_tickets"))
}

func TestDialect(t *testing.T) {
	got, err := Dialect("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", got)

	got, err = Dialect("SQLite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", got)

	_, err = Dialect("mysql")
	require.Error(t, err)
}

func TestEmbeddedMigrationsValidate(t *testing.T) {
	require.NoError(t, ValidateDir(embeddedDir))
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	path, err := CreateSQLMigration(dir, "Add Ticket Notes!", now)
	require.NoError(t, err)
	assert.Equal(t, "20261016073000_add_ticket_notes.sql", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "-- rollback add_ticket_notes")
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "add ticket notes", now)
	require.Error(t, err, "existing migrations must not be overwritten")
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	_, err := CreateSQLMigration(t.TempDir(), "  !!  ", time.Now())
	require.Error(t, err)
}

func TestValidateDirRejectsPostgresOnlySQL(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Up\nCREATE TABLE x (at TIMESTAMPTZ);\n-- +goose Down\nDROP TABLE x;\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20261016130000_x.sql"), []byte(body), 0o644))
	require.Error(t, ValidateDir(dir))
}

func TestShouldAutoRun(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = "postgres"
	assert.False(t, ShouldAutoRun(cfg))

	cfg.FeatureFlags.AutoMigrate = true
	assert.True(t, ShouldAutoRun(cfg))

	cfg.FeatureFlags.AutoMigrate = false
	cfg.DB.Driver = config.DBDriverSQLite
	assert.True(t, ShouldAutoRun(cfg))
}
