package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talkincode/productcatalog/config"
)

// getDatabase opens the configured database. dataDir holds relative sqlite files.
func getDatabase(cfg config.DBConfig, dataDir string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if cfg.Debug {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Type) {
	case "postgres", "postgresql":
		dialector = postgres.Open(postgresDSN(cfg))
	case "sqlite":
		dsn, err := sqliteDSN(cfg, dataDir)
		if err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported database type %q", cfg.Type)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.Type, "sqlite") {
		// a single writer avoids SQLITE_BUSY and keeps :memory: databases alive
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

func postgresDSN(cfg config.DBConfig) string {
	if cfg.Dsn != "" {
		return cfg.Dsn
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
}

func sqliteDSN(cfg config.DBConfig, dataDir string) (string, error) {
	if cfg.Dsn != "" {
		return cfg.Dsn, nil
	}
	name := cfg.Name
	if name == "" || name == ":memory:" || strings.HasPrefix(name, "file:") || filepath.IsAbs(name) {
		if name == "" {
			name = ":memory:"
		}
		return name, nil
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create data dir")
	}
	return filepath.Join(dataDir, name), nil
}
