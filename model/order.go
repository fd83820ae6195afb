package model

import (
	"time"

	"github.com/muhammadheryan/storefront/constant"
)

type OrderItem struct {
	ProductID    uint64  `db:"product_id" json:"product_id"`
	ProductTitle string  `db:"product_title" json:"product_title"`
	Quantity     int     `db:"quantity" json:"quantity"`
	Price        float64 `db:"price" json:"price"`
	Subtotal     float64 `db:"subtotal" json:"subtotal"`
}

type InsertOrderTxItem struct {
	UserID     uint64
	Status     constant.OrderStatus
	TotalPrice float64
}

type OrderDetail struct {
	ID         uint64               `db:"id" json:"id"`
	UserID     uint64               `db:"user_id" json:"user_id"`
	Status     constant.OrderStatus `db:"status" json:"status"`
	TotalPrice float64              `db:"total_price" json:"total_price"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
	Items      []OrderItem          `json:"items"`
}

type CheckoutResponse struct {
	OrderID    uint64      `json:"order_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	OrderDate  time.Time   `json:"order_date"`
}
