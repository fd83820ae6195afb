package transport

import (
	"net/http"

	utilsContext "github.com/muhammadheryan/storefront/utils/context"
)

// ListOrders handler
// @Summary Orders of the caller
// @Tags Orders
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]model.OrderDetail}
// @Router /api/orders [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.OrderApp.ListOrders(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ConfirmOrder handler
// @Summary Confirm a pending order
// @Description Called by the checkout worker with the internal API key
// @Tags Internal
// @Produce json
// @Param id path int true "Order ID"
// @Security InternalKey
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /internal/v1/orders/{id}/confirm [post]
func (s *RestHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.OrderApp.ConfirmOrder(ctx, orderID); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Order confirmed", nil, nil)
}
