package transport

import (
	"net/http"

	"github.com/muhammadheryan/storefront/model"
	utilsContext "github.com/muhammadheryan/storefront/utils/context"
)

// ListReviews handler
// @Summary Reviews of a product
// @Tags Reviews
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} SuccessResponse{data=model.ReviewListResponse}
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id}/reviews [get]
func (s *RestHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ReviewApp.ListReviews(ctx, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateReview handler
// @Summary Review a product
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.ReviewRequest true "Review"
// @Success 201 {object} SuccessResponse{data=model.Review}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id}/reviews [post]
func (s *RestHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ReviewApp.CreateReview(ctx, userID, productID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusCreated, "Review created", res, nil)
}

// ListMyReviews handler
// @Summary Reviews written by the caller
// @Tags Reviews
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]model.Review}
// @Router /api/my-reviews [get]
func (s *RestHandler) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.ReviewApp.ListMyReviews(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateReview handler
// @Summary Edit a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body model.ReviewRequest true "Review"
// @Success 200 {object} SuccessResponse{data=model.Review}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/reviews/{id} [put]
func (s *RestHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	reviewID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ReviewApp.UpdateReview(ctx, userID, reviewID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Review updated", res, nil)
}

// DeleteReview handler
// @Summary Delete a review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/reviews/{id} [delete]
func (s *RestHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	reviewID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.ReviewApp.DeleteReview(ctx, userID, reviewID); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Review deleted successfully", nil, nil)
}
