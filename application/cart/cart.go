package cart

import (
	"context"
	stderrors "errors"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	cartrepo "github.com/muhammadheryan/storefront/repository/cart"
	orderrepo "github.com/muhammadheryan/storefront/repository/order"
	productrepo "github.com/muhammadheryan/storefront/repository/product"
	txrepo "github.com/muhammadheryan/storefront/repository/tx"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

type CartApp interface {
	GetCart(ctx context.Context, userID uint64) (*model.CartResponse, error)
	AddToCart(ctx context.Context, userID uint64, req *model.AddToCartRequest) error
	UpdateCartItem(ctx context.Context, userID, itemID uint64, quantity int) error
	RemoveFromCart(ctx context.Context, userID, itemID uint64) error
	ClearCart(ctx context.Context, userID uint64) error
	Checkout(ctx context.Context, userID uint64) (*model.CheckoutResponse, error)
}

// EventPublisher announces committed orders.
type EventPublisher interface {
	PublishCheckout(ctx context.Context, event *model.CheckoutEvent) error
}

type cartAppImpl struct {
	txRepo      txrepo.TxRepository
	cartRepo    cartrepo.CartRepository
	productRepo productrepo.ProductRepository
	orderRepo   orderrepo.OrderRepository
	publisher   EventPublisher
}

// NewCartApp wires the cart use cases. publisher may be nil, in which case
// checkouts are not announced.
func NewCartApp(txRepo txrepo.TxRepository, cartRepo cartrepo.CartRepository, productRepo productrepo.ProductRepository, orderRepo orderrepo.OrderRepository, publisher EventPublisher) CartApp {
	return &cartAppImpl{
		txRepo:      txRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
	}
}

func (s *cartAppImpl) GetCart(ctx context.Context, userID uint64) (*model.CartResponse, error) {
	rows, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[GetCart] err cartRepo.ListByUser", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	resp := &model.CartResponse{CartItems: make([]model.CartItem, 0, len(rows))}
	var totalCents int64
	for _, row := range rows {
		sub := toCents(row.Price) * int64(row.Quantity)
		totalCents += sub
		resp.CartItems = append(resp.CartItems, model.CartItem{
			ID:        row.CartItemID,
			ProductID: row.ProductEntity.ID,
			Quantity:  row.Quantity,
			Product:   row.ProductEntity,
			Subtotal:  fromCents(sub),
		})
	}
	resp.TotalPrice = fromCents(totalCents)
	resp.ItemCount = len(resp.CartItems)
	return resp, nil
}

func (s *cartAppImpl) AddToCart(ctx context.Context, userID uint64, req *model.AddToCartRequest) error {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		return errors.SetValidationError(map[string][]string{
			"quantity": {"Quantity must be at least 1."},
		})
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[AddToCart] err productRepo.GetByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return errors.SetCustomError(constant.ErrProductNotFound)
	}

	if err := s.cartRepo.Add(ctx, userID, req.ProductID, quantity); err != nil {
		logger.Error("[AddToCart] err cartRepo.Add", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// UpdateCartItem sets the quantity; zero or less removes the line.
func (s *cartAppImpl) UpdateCartItem(ctx context.Context, userID, itemID uint64, quantity int) error {
	if _, err := s.ownedItem(ctx, "UpdateCartItem", userID, itemID); err != nil {
		return err
	}

	if quantity <= 0 {
		if err := s.cartRepo.Delete(ctx, itemID); err != nil {
			logger.Error("[UpdateCartItem] err cartRepo.Delete", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		return nil
	}

	if err := s.cartRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		logger.Error("[UpdateCartItem] err cartRepo.UpdateQuantity", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *cartAppImpl) RemoveFromCart(ctx context.Context, userID, itemID uint64) error {
	if _, err := s.ownedItem(ctx, "RemoveFromCart", userID, itemID); err != nil {
		return err
	}

	if err := s.cartRepo.Delete(ctx, itemID); err != nil {
		logger.Error("[RemoveFromCart] err cartRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *cartAppImpl) ClearCart(ctx context.Context, userID uint64) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		logger.Error("[ClearCart] err cartRepo.Clear", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// Checkout turns the cart into a pending order and empties the cart in one
// transaction.
func (s *cartAppImpl) Checkout(ctx context.Context, userID uint64) (*model.CheckoutResponse, error) {
	var resp *model.CheckoutResponse

	err := txrepo.Run(ctx, s.txRepo, func(tx *sqlx.Tx) error {
		rows, err := s.cartRepo.ListByUserTx(ctx, tx, userID)
		if err != nil {
			logger.Error("[Checkout] err cartRepo.ListByUserTx", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if len(rows) == 0 {
			return errors.SetCustomError(constant.ErrCartEmpty)
		}

		items := make([]model.OrderItem, 0, len(rows))
		var totalCents int64
		for _, row := range rows {
			sub := toCents(row.Price) * int64(row.Quantity)
			totalCents += sub
			items = append(items, model.OrderItem{
				ProductID:    row.ProductEntity.ID,
				ProductTitle: row.Title,
				Quantity:     row.Quantity,
				Price:        row.Price,
				Subtotal:     fromCents(sub),
			})
		}

		orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{
			UserID:     userID,
			Status:     constant.OrderStatusPending,
			TotalPrice: fromCents(totalCents),
		})
		if err != nil {
			logger.Error("[Checkout] err orderRepo.InsertOrderTx", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, items); err != nil {
			logger.Error("[Checkout] err orderRepo.InsertOrderItemsTx", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		if err := s.cartRepo.ClearTx(ctx, tx, userID); err != nil {
			logger.Error("[Checkout] err cartRepo.ClearTx", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		resp = &model.CheckoutResponse{
			OrderID:    orderID,
			Items:      items,
			TotalPrice: fromCents(totalCents),
			OrderDate:  time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		var ce errors.CustomError
		if stderrors.As(err, &ce) {
			return nil, ce
		}
		logger.Error("[Checkout] err tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if s.publisher != nil {
		event := &model.CheckoutEvent{
			OrderID:    resp.OrderID,
			UserID:     userID,
			TotalPrice: resp.TotalPrice,
			PlacedAt:   resp.OrderDate,
		}
		if err := s.publisher.PublishCheckout(ctx, event); err != nil {
			logger.Error("[Checkout] err publisher.PublishCheckout", zap.String("error", err.Error()))
		}
	}

	return resp, nil
}

func (s *cartAppImpl) ownedItem(ctx context.Context, method string, userID, itemID uint64) (*model.CartItemEntity, error) {
	item, err := s.cartRepo.GetItem(ctx, userID, itemID)
	if err != nil {
		logger.Error("["+method+"] err cartRepo.GetItem", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if item == nil {
		return nil, errors.SetCustomError(constant.ErrCartItemNotFound)
	}
	return item, nil
}

func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
