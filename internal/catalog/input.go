package catalog

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/talkincode/productcatalog/internal/domain"
)

// CreateInput is the request body of a product creation.
//
// Price is left untyped because clients send either a JSON number or a
// numeric string.
type CreateInput struct {
	Name      string      `json:"name"`
	Price     interface{} `json:"price"`
	Category  string      `json:"category"`
	Variants  []string    `json:"variants"`
	Available *bool       `json:"available"`
	ImageURL  *string     `json:"imageUrl"`
}

// toProduct validates the input and applies defaults.
func (in CreateInput) toProduct() (*domain.Product, error) {
	price, present, err := parsePrice(in.Price)
	if in.Name == "" || in.Category == "" || !present {
		return nil, &ValidationError{Message: MsgRequiredFields}
	}
	if err != nil {
		return nil, err
	}

	variants := in.Variants
	if variants == nil {
		variants = []string{}
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}

	return &domain.Product{
		Name:      in.Name,
		Price:     price,
		Category:  in.Category,
		Variants:  variants,
		Available: available,
		ImageURL:  in.ImageURL,
	}, nil
}

// parsePrice coerces a decoded JSON value to a price. A zero price is a
// present price; only absent, null and blank values count as missing.
func parsePrice(v interface{}) (price float64, present bool, err error) {
	var f float64
	switch p := v.(type) {
	case nil:
		return 0, false, nil
	case string:
		s := strings.TrimSpace(p)
		if s == "" {
			return 0, false, nil
		}
		f, err = cast.ToFloat64E(s)
	case float64, float32, int, int32, int64, json.Number:
		f, err = cast.ToFloat64E(p)
	default:
		// booleans, arrays and objects
		return 0, true, &ValidationError{Message: MsgInvalidPrice}
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, &ValidationError{Message: MsgInvalidPrice}
	}
	return f, true, nil
}
