package domain

import "time"

// Product is a catalog entry. Category is a free-form string, the set of
// categories is whatever values exist in the table.
type Product struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Price     float64   `gorm:"not null" json:"price"` // price in main currency units
	Category  string    `gorm:"size:255;not null;index" json:"category"`
	Variants  []string  `gorm:"serializer:json;type:text" json:"variants"` // ordered, e.g. colors or sizes
	Available bool      `gorm:"not null" json:"available"`
	ImageURL  *string   `gorm:"size:1024" json:"imageUrl"` // URL to product image (optional)
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}
