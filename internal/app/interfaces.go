package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/talkincode/productcatalog/config"
	"github.com/talkincode/productcatalog/internal/catalog"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the catalog service
type CatalogProvider interface {
	Catalog() catalog.Service
}

// AppContext combines all provider interfaces for full application context
type AppContext interface {
	DBProvider
	ConfigProvider
	CatalogProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb() error
	DropAll()
	// SeedProducts inserts the fixture products
	SeedProducts(ctx context.Context, reset bool) (int, error)
	Release()
}
