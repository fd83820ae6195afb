package transport

import (
	"net/http"

	utilsContext "github.com/muhammadheryan/storefront/utils/context"
)

// GetWishlist handler
// @Summary Wishlist
// @Tags Wishlist
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]model.WishlistItem}
// @Router /api/wishlist/ [get]
func (s *RestHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.WishlistApp.GetWishlist(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// AddToWishlist handler
// @Summary Add a product to the wishlist
// @Tags Wishlist
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 201 {object} SuccessResponse{data=model.WishlistAddResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/wishlist/{product_id} [post]
func (s *RestHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	productID, err := pathID(r, "product_id")
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.WishlistApp.AddToWishlist(ctx, userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusCreated, "Product added to wishlist", res, nil)
}

// RemoveFromWishlist handler
// @Summary Remove a product from the wishlist
// @Tags Wishlist
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/wishlist/{product_id} [delete]
func (s *RestHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	productID, err := pathID(r, "product_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.WishlistApp.RemoveFromWishlist(ctx, userID, productID); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Product removed from wishlist", nil, nil)
}
