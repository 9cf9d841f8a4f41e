// Package commission keeps the per-seller commission rate history. Records
// are append-only; the rate in effect is always the most recently created
// record, and a seller without any record is treated as rate 0.
package commission

import "time"

// Rate is one commission record for a seller. RatePercent is the percentage
// added on top of the seller's base price to form the customer-facing price.
type Rate struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"seller_id"`
	RatePercent float64   `json:"rate_percent"`
	CreatedAt   time.Time `json:"created_at"`
}

// RateForm is the payload for appending a new rate record.
type RateForm struct {
	RatePercent float64 `json:"rate_percent" validate:"gte=0"`
}
