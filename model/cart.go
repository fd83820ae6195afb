package model

import "time"

type CartItemEntity struct {
	ID        uint64    `db:"id"`
	UserID    uint64    `db:"user_id"`
	ProductID uint64    `db:"product_id"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
}

// CartRow is a cart line joined with its product.
type CartRow struct {
	CartItemID uint64 `db:"cart_item_id"`
	Quantity   int    `db:"quantity"`
	ProductEntity
}

type CartItem struct {
	ID        uint64        `json:"id"`
	ProductID uint64        `json:"product_id"`
	Quantity  int           `json:"quantity"`
	Product   ProductEntity `json:"product"`
	Subtotal  float64       `json:"subtotal"`
}

type CartResponse struct {
	CartItems  []CartItem `json:"cart_items"`
	TotalPrice float64    `json:"total_price"`
	ItemCount  int        `json:"item_count"`
}

type AddToCartRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
