package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talkincode/productcatalog/config"
	"github.com/talkincode/productcatalog/internal/domain"
)

func sqliteConfig(t *testing.T) *config.AppConfig {
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Database = config.DBConfig{Type: "sqlite", Name: ":memory:"}
	cfg.Logger.FileEnable = false
	return &cfg
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	application := NewApplication(sqliteConfig(t))
	require.NoError(t, application.Init())
	t.Cleanup(func() {
		application.Release()
		zap.ReplaceGlobals(zap.NewNop())
	})
	return application
}

func TestInitMigratesSchema(t *testing.T) {
	application := newTestApp(t)

	assert.NotNil(t, application.DB())
	assert.True(t, application.DB().Migrator().HasTable(&domain.Product{}))
	assert.NotNil(t, application.Catalog())
}

func TestSeedProducts(t *testing.T) {
	application := newTestApp(t)
	ctx := context.Background()

	n, err := application.SeedProducts(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	products, err := application.Catalog().List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, products, 6)

	electronics, err := application.Catalog().List(ctx, "Electronics")
	require.NoError(t, err)
	assert.Len(t, electronics, 3)

	// seeding twice without reset appends another copy
	_, err = application.SeedProducts(ctx, false)
	require.NoError(t, err)
	products, err = application.Catalog().List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, products, 12)

	_, err = application.SeedProducts(ctx, true)
	require.NoError(t, err)
	products, err = application.Catalog().List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, products, 6)
}

func TestSqliteFileUnderDataDir(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Database.Name = "catalog.db"

	application := NewApplication(cfg)
	require.NoError(t, application.Init())
	defer application.Release()

	_, err := os.Stat(filepath.Join(cfg.GetDataDir(), "catalog.db"))
	assert.NoError(t, err)
}

func TestUnsupportedDatabase(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Database.Type = "oracle"

	err := NewApplication(cfg).Init()
	assert.Error(t, err)
}

func TestFileLogger(t *testing.T) {
	logger, err := newLogger(config.LogConfig{
		Mode:       "production",
		FileEnable: true,
		Filename:   filepath.Join(t.TempDir(), "catalog.log"),
	})
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()
}

func TestPanicError(t *testing.T) {
	err := panicError("migrator exploded")
	require.Error(t, err)
	assert.Equal(t, "migrator exploded", err.Error())

	cause := errors.New("boom")
	assert.ErrorIs(t, panicError(cause), cause)
}

func TestMigrateDBRecoversPanic(t *testing.T) {
	application := NewApplication(sqliteConfig(t))

	var err error
	assert.NotPanics(t, func() { err = application.MigrateDB(false) })
	assert.Error(t, err)
}
