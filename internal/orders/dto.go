package orders

import "time"

// ListOrdersRequest filters the order list. Date bounds apply to updated_at.
type ListOrdersRequest struct {
	Status    *Status    `json:"status,omitempty"`
	SellerID  *int64     `json:"seller_id,omitempty"`
	CourierID *int64     `json:"courier_id,omitempty"`
	DateFrom  *time.Time `json:"date_from,omitempty"`
	DateTo    *time.Time `json:"date_to,omitempty"`
	Search    string     `json:"search,omitempty"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// StatusChangeRequest moves an order to a new status.
type StatusChangeRequest struct {
	Status    Status `json:"status" validate:"required"`
	CourierID *int64 `json:"courier_id,omitempty"`
}
