package catalog

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/talkincode/productcatalog/internal/domain"
)

//go:embed fixtures.yaml
var fixturesData []byte

type fixture struct {
	Name      string   `yaml:"name"`
	Price     float64  `yaml:"price"`
	Category  string   `yaml:"category"`
	Variants  []string `yaml:"variants"`
	Available bool     `yaml:"available"`
	ImageURL  string   `yaml:"image_url"`
}

// Fixtures returns a fresh copy of the seed products.
func Fixtures() ([]domain.Product, error) {
	var items []fixture
	if err := yaml.Unmarshal(fixturesData, &items); err != nil {
		return nil, errors.Wrap(err, "parse fixtures")
	}
	products := make([]domain.Product, 0, len(items))
	for _, it := range items {
		imageURL := it.ImageURL
		products = append(products, domain.Product{
			Name:      it.Name,
			Price:     it.Price,
			Category:  it.Category,
			Variants:  it.Variants,
			Available: it.Available,
			ImageURL:  &imageURL,
		})
	}
	return products, nil
}
