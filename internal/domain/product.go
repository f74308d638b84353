package domain

import "time"

// Product is a purchasable catalog entry. Stock is nil when the product has
// no inventory ceiling.
type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Currency    string    `json:"currency"`
	Stock       *int      `json:"stock,omitempty"`
	Images      []string  `json:"images,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
