package storefront

import (
	"fmt"

	"github.com/talkincode/productcatalog/internal/domain"
)

// Card is one rendered product.
type Card struct {
	Name         string
	Category     string
	Price        string
	Available    bool
	Availability string
	Variants     []string
	ImageURL     string
}

// ViewState is everything the grid template renders.
type ViewState struct {
	Loading    bool
	Err        string
	Categories []string
	Selected   string
	Cards      []Card
}

// Empty reports whether the "no products" message applies.
func (v ViewState) Empty() bool {
	return !v.Loading && v.Err == "" && len(v.Cards) == 0
}

// DistinctCategories returns the categories present in products in
// first-seen order.
func DistinctCategories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

func AvailabilityLabel(available bool) string {
	if available {
		return "In Stock"
	}
	return "Out of Stock"
}

func toCards(products []domain.Product) []Card {
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		card := Card{
			Name:         p.Name,
			Category:     p.Category,
			Price:        FormatPrice(p.Price),
			Available:    p.Available,
			Availability: AvailabilityLabel(p.Available),
			Variants:     p.Variants,
		}
		if p.ImageURL != nil {
			card.ImageURL = *p.ImageURL
		}
		cards = append(cards, card)
	}
	return cards
}
