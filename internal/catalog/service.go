// Package catalog implements the product catalog operations shared by
// every HTTP binding: listing with an optional category filter and creation.
package catalog

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/productcatalog/internal/domain"
)

// Service is the catalog contract exposed over HTTP.
type Service interface {
	// List returns every product when category is empty, otherwise the
	// products whose category equals it exactly. Order is storage order.
	List(ctx context.Context, category string) ([]domain.Product, error)

	// Create validates the input and stores a new product.
	Create(ctx context.Context, in CreateInput) (*domain.Product, error)
}

// CatalogService implements Service on top of a Repository.
type CatalogService struct {
	repo Repository
}

var _ Service = (*CatalogService)(nil)

func NewService(repo Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) List(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.Find(ctx, category)
	if err != nil {
		zap.L().Error("failed to fetch products", zap.String("category", category), zap.Error(err))
		return nil, &StorageError{Kind: ErrFetch, Err: errors.Wrap(err, "find products")}
	}
	if products == nil {
		products = []domain.Product{}
	}
	for i := range products {
		if products[i].Variants == nil {
			products[i].Variants = []string{}
		}
	}
	return products, nil
}

func (s *CatalogService) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	p, err := in.toProduct()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		zap.L().Error("failed to create product", zap.String("name", p.Name), zap.Error(err))
		return nil, &StorageError{Kind: ErrCreate, Err: errors.Wrap(err, "create product")}
	}
	return p, nil
}

// Seed inserts the fixture products and returns how many were stored.
func Seed(ctx context.Context, repo Repository) (int, error) {
	products, err := Fixtures()
	if err != nil {
		return 0, err
	}
	if err := repo.CreateBatch(ctx, products); err != nil {
		return 0, errors.Wrap(err, "seed products")
	}
	return len(products), nil
}
