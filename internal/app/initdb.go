package app

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/productcatalog/internal/catalog"
)

// SeedProducts inserts the fixture products, optionally resetting the tables first
func (a *Application) SeedProducts(ctx context.Context, reset bool) (int, error) {
	if reset {
		if err := a.InitDb(); err != nil {
			return 0, errors.Wrap(err, "reset tables")
		}
		zap.L().Warn("catalog tables reset")
	}
	n, err := catalog.Seed(ctx, catalog.NewGormRepository(a.gormDB))
	if err != nil {
		zap.L().Error("failed to seed products", zap.Error(err))
		return 0, err
	}
	zap.L().Info("database seeded successfully", zap.Int("products", n))
	return n, nil
}
