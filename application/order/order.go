package order

import (
	"context"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	orderrepo "github.com/muhammadheryan/storefront/repository/order"
	txrepo "github.com/muhammadheryan/storefront/repository/tx"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

type OrderApp interface {
	ListOrders(ctx context.Context, userID uint64) ([]model.OrderDetail, error)
	ConfirmOrder(ctx context.Context, orderID uint64) error
}

type orderAppImpl struct {
	txRepo    txrepo.TxRepository
	orderRepo orderrepo.OrderRepository
}

func NewOrderApp(txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository) OrderApp {
	return &orderAppImpl{txRepo: txRepo, orderRepo: orderRepo}
}

func (s *orderAppImpl) ListOrders(ctx context.Context, userID uint64) ([]model.OrderDetail, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[ListOrders] err orderRepo.ListByUser", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if orders == nil {
		orders = []model.OrderDetail{}
	}
	return orders, nil
}

// ConfirmOrder moves a pending order to confirmed. It is driven by the
// checkout worker.
func (s *orderAppImpl) ConfirmOrder(ctx context.Context, orderID uint64) error {
	err := txrepo.Run(ctx, s.txRepo, func(tx *sqlx.Tx) error {
		order, err := s.orderRepo.GetOrderDetailTx(ctx, tx, orderID)
		if err != nil {
			logger.Error("[ConfirmOrder] get order", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if order == nil {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		if order.Status != constant.OrderStatusPending {
			return errors.SetCustomError(constant.ErrInvalidOrderStatus)
		}

		if err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, constant.OrderStatusConfirmed); err != nil {
			logger.Error("[ConfirmOrder] update status", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		return nil
	})
	if err != nil {
		var ce errors.CustomError
		if stderrors.As(err, &ce) {
			return ce
		}
		logger.Error("[ConfirmOrder] tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
