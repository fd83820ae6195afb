package transport

import (
	"net/http"

	"github.com/muhammadheryan/storefront/model"
	utilsContext "github.com/muhammadheryan/storefront/utils/context"
)

// GetCart handler
// @Summary Shopping cart
// @Tags Cart
// @Produce json
// @Success 200 {object} SuccessResponse{data=model.CartResponse}
// @Failure 401 {object} ErrorResponse
// @Router /api/cart/ [get]
func (s *RestHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.CartApp.GetCart(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// AddToCart handler
// @Summary Add a product to the cart
// @Description Adds to the existing quantity when the product is already in the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.AddToCartRequest true "Product and quantity"
// @Success 201 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cart/add [post]
func (s *RestHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var req model.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validate(&req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.CartApp.AddToCart(ctx, userID, &req); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusCreated, "Product added to cart successfully", nil, nil)
}

// UpdateCartItem handler
// @Summary Change a cart line quantity
// @Description A quantity of zero or less removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param request body model.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cart/update/{id} [put]
func (s *RestHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.UpdateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validate(&req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.CartApp.UpdateCartItem(ctx, userID, itemID, *req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Cart item updated successfully", nil, nil)
}

// RemoveFromCart handler
// @Summary Remove a cart line
// @Tags Cart
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cart/remove/{id} [delete]
func (s *RestHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.CartApp.RemoveFromCart(ctx, userID, itemID); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Item removed from cart successfully", nil, nil)
}

// ClearCart handler
// @Summary Empty the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/cart/clear [delete]
func (s *RestHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	if err := s.CartApp.ClearCart(ctx, userID); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Cart cleared successfully", nil, nil)
}

// Checkout handler
// @Summary Place an order from the cart
// @Tags Cart
// @Produce json
// @Success 201 {object} SuccessResponse{data=model.CheckoutResponse}
// @Failure 400 {object} ErrorResponse
// @Router /api/cart/checkout [post]
func (s *RestHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.CartApp.Checkout(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusCreated, "Order placed successfully", res, nil)
}
