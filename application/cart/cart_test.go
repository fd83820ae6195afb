package cart_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jmoiron/sqlx"
	appcart "github.com/muhammadheryan/storefront/application/cart"
	"github.com/muhammadheryan/storefront/constant"
	cartappmocks "github.com/muhammadheryan/storefront/mocks/application/cart"
	cartmocks "github.com/muhammadheryan/storefront/mocks/repository/cart"
	ordermocks "github.com/muhammadheryan/storefront/mocks/repository/order"
	productmocks "github.com/muhammadheryan/storefront/mocks/repository/product"
	txmocks "github.com/muhammadheryan/storefront/mocks/repository/tx"
	"github.com/muhammadheryan/storefront/model"
	cerr "github.com/muhammadheryan/storefront/utils/errors"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	txRepo      *txmocks.TxRepository
	cartRepo    *cartmocks.CartRepository
	productRepo *productmocks.ProductRepository
	orderRepo   *ordermocks.OrderRepository
	publisher   *cartappmocks.EventPublisher
}

func newFields(t *testing.T) fields {
	return fields{
		txRepo:      txmocks.NewTxRepository(t),
		cartRepo:    cartmocks.NewCartRepository(t),
		productRepo: productmocks.NewProductRepository(t),
		orderRepo:   ordermocks.NewOrderRepository(t),
		publisher:   cartappmocks.NewEventPublisher(t),
	}
}

func (f fields) app() appcart.CartApp {
	return appcart.NewCartApp(f.txRepo, f.cartRepo, f.productRepo, f.orderRepo, f.publisher)
}

func qty(v int) *int { return &v }

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

func cartRows() []model.CartRow {
	return []model.CartRow{
		{CartItemID: 11, Quantity: 3, ProductEntity: model.ProductEntity{ID: 1, Title: "Pen", Price: 0.1}},
		{CartItemID: 12, Quantity: 1, ProductEntity: model.ProductEntity{ID: 2, Title: "Ink", Price: 0.2}},
	}
}

func TestCartApp_GetCart(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields)
		want     *model.CartResponse
		wantErr  bool
	}{
		{
			name: "success: subtotals computed in cents",
			mockCall: func(f fields) {
				f.cartRepo.On("ListByUser", mock.Anything, uint64(1)).Return(cartRows(), nil).Once()
			},
			want: &model.CartResponse{
				CartItems: []model.CartItem{
					{ID: 11, ProductID: 1, Quantity: 3, Product: model.ProductEntity{ID: 1, Title: "Pen", Price: 0.1}, Subtotal: 0.3},
					{ID: 12, ProductID: 2, Quantity: 1, Product: model.ProductEntity{ID: 2, Title: "Ink", Price: 0.2}, Subtotal: 0.2},
				},
				TotalPrice: 0.5,
				ItemCount:  2,
			},
		},
		{
			name: "success: empty cart",
			mockCall: func(f fields) {
				f.cartRepo.On("ListByUser", mock.Anything, uint64(1)).Return([]model.CartRow{}, nil).Once()
			},
			want: &model.CartResponse{CartItems: []model.CartItem{}},
		},
		{
			name: "error: repository failure",
			mockCall: func(f fields) {
				f.cartRepo.On("ListByUser", mock.Anything, uint64(1)).Return(nil, errors.New("db")).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := f.app().GetCart(context.Background(), 1)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetCart() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, constant.ErrInternal)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("GetCart() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCartApp_AddToCart(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.AddToCartRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: default quantity is one",
			req:  &model.AddToCartRequest{ProductID: 5},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
				f.cartRepo.On("Add", mock.Anything, uint64(1), uint64(5), 1).Return(nil).Once()
			},
		},
		{
			name: "success: explicit quantity",
			req:  &model.AddToCartRequest{ProductID: 5, Quantity: qty(4)},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
				f.cartRepo.On("Add", mock.Anything, uint64(1), uint64(5), 4).Return(nil).Once()
			},
		},
		{
			name:    "error: zero quantity",
			req:     &model.AddToCartRequest{ProductID: 5, Quantity: qty(0)},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: product not found",
			req:  &model.AddToCartRequest{ProductID: 9},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(9)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
		{
			name: "error: insert fails",
			req:  &model.AddToCartRequest{ProductID: 5},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
				f.cartRepo.On("Add", mock.Anything, uint64(1), uint64(5), 1).Return(errors.New("db")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			err := f.app().AddToCart(context.Background(), 1, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddToCart() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}

func TestCartApp_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	item := &model.CartItemEntity{ID: 11, UserID: 1, ProductID: 5, Quantity: 2}

	t.Run("update sets quantity", func(t *testing.T) {
		f := newFields(t)
		f.cartRepo.On("GetItem", mock.Anything, uint64(1), uint64(11)).Return(item, nil).Once()
		f.cartRepo.On("UpdateQuantity", mock.Anything, uint64(11), 7).Return(nil).Once()
		if err := f.app().UpdateCartItem(ctx, 1, 11, 7); err != nil {
			t.Fatalf("UpdateCartItem() error = %v", err)
		}
	})

	t.Run("update to zero deletes", func(t *testing.T) {
		f := newFields(t)
		f.cartRepo.On("GetItem", mock.Anything, uint64(1), uint64(11)).Return(item, nil).Once()
		f.cartRepo.On("Delete", mock.Anything, uint64(11)).Return(nil).Once()
		if err := f.app().UpdateCartItem(ctx, 1, 11, 0); err != nil {
			t.Fatalf("UpdateCartItem() error = %v", err)
		}
	})

	t.Run("update foreign item", func(t *testing.T) {
		f := newFields(t)
		f.cartRepo.On("GetItem", mock.Anything, uint64(2), uint64(11)).Return(nil, nil).Once()
		assertErrCode(t, f.app().UpdateCartItem(ctx, 2, 11, 3), constant.ErrCartItemNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		f := newFields(t)
		f.cartRepo.On("GetItem", mock.Anything, uint64(1), uint64(11)).Return(item, nil).Once()
		f.cartRepo.On("Delete", mock.Anything, uint64(11)).Return(nil).Once()
		if err := f.app().RemoveFromCart(ctx, 1, 11); err != nil {
			t.Fatalf("RemoveFromCart() error = %v", err)
		}
	})

	t.Run("clear", func(t *testing.T) {
		f := newFields(t)
		f.cartRepo.On("Clear", mock.Anything, uint64(1)).Return(errors.New("db")).Once()
		assertErrCode(t, f.app().ClearCart(ctx, 1), constant.ErrInternal)
	})
}

func TestCartApp_Checkout(t *testing.T) {
	tx := &sqlx.Tx{}
	wantItems := []model.OrderItem{
		{ProductID: 1, ProductTitle: "Pen", Quantity: 3, Price: 0.1, Subtotal: 0.3},
		{ProductID: 2, ProductTitle: "Ink", Quantity: 1, Price: 0.2, Subtotal: 0.2},
	}

	tests := []struct {
		name          string
		withPublisher bool
		mockCall      func(f fields)
		wantErr       bool
		errCode       constant.ErrorType
	}{
		{
			name:          "success: order committed and announced",
			withPublisher: true,
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.cartRepo.On("ListByUserTx", mock.Anything, tx, uint64(1)).Return(cartRows(), nil).Once()
				f.orderRepo.
					On("InsertOrderTx", mock.Anything, tx, &model.InsertOrderTxItem{UserID: 1, Status: constant.OrderStatusPending, TotalPrice: 0.5}).
					Return(uint64(42), nil).
					Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(42), wantItems).Return(nil).Once()
				f.cartRepo.On("ClearTx", mock.Anything, tx, uint64(1)).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.publisher.
					On("PublishCheckout", mock.Anything, mock.MatchedBy(func(e *model.CheckoutEvent) bool {
						return e.OrderID == 42 && e.UserID == 1 && e.TotalPrice == 0.5
					})).
					Return(errors.New("broker down")).
					Once()
			},
		},
		{
			name: "success: no publisher configured",
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.cartRepo.On("ListByUserTx", mock.Anything, tx, uint64(1)).Return(cartRows(), nil).Once()
				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(42), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(42), wantItems).Return(nil).Once()
				f.cartRepo.On("ClearTx", mock.Anything, tx, uint64(1)).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
			},
		},
		{
			name: "error: empty cart rolls back",
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.cartRepo.On("ListByUserTx", mock.Anything, tx, uint64(1)).Return([]model.CartRow{}, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrCartEmpty,
		},
		{
			name: "error: item insert fails",
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.cartRepo.On("ListByUserTx", mock.Anything, tx, uint64(1)).Return(cartRows(), nil).Once()
				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(42), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(42), mock.Anything).Return(errors.New("db")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: begin fails",
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("no conn")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			var app appcart.CartApp
			if tt.withPublisher {
				app = f.app()
			} else {
				app = appcart.NewCartApp(f.txRepo, f.cartRepo, f.productRepo, f.orderRepo, nil)
			}

			got, err := app.Checkout(context.Background(), 1)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Checkout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.OrderID != 42 || got.TotalPrice != 0.5 || !reflect.DeepEqual(got.Items, wantItems) {
				t.Fatalf("Checkout() = %+v", got)
			}
			if got.OrderDate.IsZero() {
				t.Fatal("Checkout() order date not set")
			}
		})
	}
}
