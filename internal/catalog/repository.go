package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/talkincode/productcatalog/internal/domain"
)

// Repository handles database operations for products
type Repository interface {
	// Find returns products in storage order, filtered by exact category
	// match when category is non-empty
	Find(ctx context.Context, category string) ([]domain.Product, error)

	// Create inserts a new product, filling its ID and timestamps
	Create(ctx context.Context, p *domain.Product) error

	// CreateBatch inserts all products in one transaction
	CreateBatch(ctx context.Context, products []domain.Product) error
}

// GormRepository is the GORM implementation of Repository
type GormRepository struct {
	db *gorm.DB
}

var _ Repository = (*GormRepository)(nil)

// NewGormRepository creates a new GORM-based repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Find(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	query := r.db.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormRepository) CreateBatch(ctx context.Context, products []domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
