package categories

import "time"

// Category represents a product category.
type Category struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryForm is the create/update payload.
type CategoryForm struct {
	Slug string `json:"slug" validate:"required,max=120"`
	Name string `json:"name" validate:"required,max=200"`
}
