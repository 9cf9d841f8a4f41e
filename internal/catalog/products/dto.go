package products

// ProductForm is the create/update payload.
type ProductForm struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty"`
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
	SellerID    int64   `json:"seller_id" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive    bool    `json:"is_active"`
}
