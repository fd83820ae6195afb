package model

import "time"

// CheckoutEvent is published once an order has been committed.
type CheckoutEvent struct {
	OrderID    uint64    `json:"order_id"`
	UserID     uint64    `json:"user_id"`
	TotalPrice float64   `json:"total_price"`
	PlacedAt   time.Time `json:"placed_at"`
}
