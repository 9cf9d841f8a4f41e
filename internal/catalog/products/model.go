package products

import "time"

// Product represents a sellable item owned by a seller. Price is the
// customer-facing amount and already includes the seller's commission markup.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CategoryID  int64     `json:"category_id"`
	SellerID    int64     `json:"seller_id"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductWithRefs carries display names resolved from related tables.
type ProductWithRefs struct {
	Product
	CategoryName string `json:"category_name"`
	SellerName   string `json:"seller_name"`
}
