package orders

import "time"

// Status is the order lifecycle state. Delivered and canceled are terminal;
// only delivered orders enter revenue and debt figures.
type Status string

const (
	StatusCreated   Status = "created"
	StatusAccepted  Status = "accepted"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCanceled  Status = "canceled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusCreated, StatusAccepted, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether s ends the order lifecycle.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// Order represents a customer order. UpdatedAt is bumped on every status
// change and is the timestamp all financial reports filter on, so an order
// delivered today counts today regardless of when it was placed.
type Order struct {
	ID            int64     `json:"id"`
	Number        string    `json:"number"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	Address       *string   `json:"address,omitempty"`
	CourierID     *int64    `json:"courier_id,omitempty"`
	Status        Status    `json:"status"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Items         []Item    `json:"items,omitempty"`
}

// Item is one order line. A single order may carry items from several
// sellers (multi-seller cart), so the seller reference lives on the line.
type Item struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	SellerID    int64   `json:"seller_id"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderWithRefs carries display names resolved from related tables.
type OrderWithRefs struct {
	Order
	CourierName *string `json:"courier_name,omitempty"`
}
