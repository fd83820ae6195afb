package wishlist_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	appwishlist "github.com/muhammadheryan/storefront/application/wishlist"
	"github.com/muhammadheryan/storefront/constant"
	productmocks "github.com/muhammadheryan/storefront/mocks/repository/product"
	redismocks "github.com/muhammadheryan/storefront/mocks/repository/redis"
	wishlistmocks "github.com/muhammadheryan/storefront/mocks/repository/wishlist"
	"github.com/muhammadheryan/storefront/model"
	redisrepo "github.com/muhammadheryan/storefront/repository/redis"
	wishlistrepo "github.com/muhammadheryan/storefront/repository/wishlist"
	cerr "github.com/muhammadheryan/storefront/utils/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	wishlistRepo *wishlistmocks.WishlistRepository
	productRepo  *productmocks.ProductRepository
	redisRepo    *redismocks.RedisRepository
}

func newFields(t *testing.T) fields {
	return fields{
		wishlistRepo: wishlistmocks.NewWishlistRepository(t),
		productRepo:  productmocks.NewProductRepository(t),
		redisRepo:    redismocks.NewRedisRepository(t),
	}
}

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

func TestWishlistApp_GetWishlist(t *testing.T) {
	cover := "http://img/1.png"
	items := []model.WishlistItem{{ID: 1, ProductID: 5, Title: "Lamp", CoverImageURL: &cover, Price: 12.5}}
	cachedJSON := `[{"id":1,"productId":5,"title":"Lamp","coverImageUrl":"http://img/1.png","price":12.5}]`

	tests := []struct {
		name     string
		mockCall func(f fields)
		want     []model.WishlistItem
		wantErr  bool
	}{
		{
			name: "success: served from cache",
			mockCall: func(f fields) {
				f.redisRepo.On("Get", mock.Anything, "wishlist:1").Return(cachedJSON, nil).Once()
			},
			want: items,
		},
		{
			name: "success: cache miss loads and stores",
			mockCall: func(f fields) {
				f.redisRepo.On("Get", mock.Anything, "wishlist:1").Return("", goredis.Nil).Once()
				f.wishlistRepo.On("ListByUser", mock.Anything, uint64(1)).Return(items, nil).Once()
				f.redisRepo.On("SetWithTTL", mock.Anything, "wishlist:1", cachedJSON, appwishlist.CacheTTL).Return(nil).Once()
			},
			want: items,
		},
		{
			name: "success: redis unavailable",
			mockCall: func(f fields) {
				f.redisRepo.On("Get", mock.Anything, "wishlist:1").Return("", redisrepo.ErrNoClient).Once()
				f.wishlistRepo.On("ListByUser", mock.Anything, uint64(1)).Return(nil, nil).Once()
				f.redisRepo.On("SetWithTTL", mock.Anything, "wishlist:1", "[]", appwishlist.CacheTTL).Return(nil).Once()
			},
			want: []model.WishlistItem{},
		},
		{
			name: "success: corrupt cache entry falls through",
			mockCall: func(f fields) {
				f.redisRepo.On("Get", mock.Anything, "wishlist:1").Return("{not json", nil).Once()
				f.wishlistRepo.On("ListByUser", mock.Anything, uint64(1)).Return(items, nil).Once()
				f.redisRepo.On("SetWithTTL", mock.Anything, "wishlist:1", cachedJSON, appwishlist.CacheTTL).Return(errors.New("oom")).Once()
			},
			want: items,
		},
		{
			name: "error: database failure",
			mockCall: func(f fields) {
				f.redisRepo.On("Get", mock.Anything, "wishlist:1").Return("", goredis.Nil).Once()
				f.wishlistRepo.On("ListByUser", mock.Anything, uint64(1)).Return(nil, errors.New("db")).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := appwishlist.NewWishlistApp(f.wishlistRepo, f.productRepo, f.redisRepo)

			got, err := app.GetWishlist(context.Background(), 1)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetWishlist() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, constant.ErrInternal)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("GetWishlist() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWishlistApp_AddToWishlist(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields)
		want     *model.WishlistAddResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: added and cache dropped",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
				f.wishlistRepo.On("Add", mock.Anything, uint64(1), uint64(5)).Return(uint64(30), nil).Once()
				f.redisRepo.On("Delete", mock.Anything, "wishlist:1").Return(nil).Once()
			},
			want: &model.WishlistAddResponse{ID: 30},
		},
		{
			name: "error: product missing",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
		{
			name: "error: already in wishlist",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
				f.wishlistRepo.On("Add", mock.Anything, uint64(1), uint64(5)).Return(uint64(0), wishlistrepo.ErrDuplicate).Once()
			},
			wantErr: true,
			errCode: constant.ErrAlreadyInWishlist,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := appwishlist.NewWishlistApp(f.wishlistRepo, f.productRepo, f.redisRepo)

			got, err := app.AddToWishlist(context.Background(), 1, 5)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddToWishlist() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("AddToWishlist() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWishlistApp_RemoveFromWishlist(t *testing.T) {
	ctx := context.Background()

	f := newFields(t)
	app := appwishlist.NewWishlistApp(f.wishlistRepo, f.productRepo, f.redisRepo)
	f.wishlistRepo.On("Remove", mock.Anything, uint64(1), uint64(5)).Return(nil).Once()
	f.redisRepo.On("Delete", mock.Anything, "wishlist:1").Return(errors.New("down")).Once()
	if err := app.RemoveFromWishlist(ctx, 1, 5); err != nil {
		t.Fatalf("RemoveFromWishlist() error = %v", err)
	}

	f.wishlistRepo.On("Remove", mock.Anything, uint64(1), uint64(6)).Return(wishlistrepo.ErrNotFound).Once()
	assertErrCode(t, app.RemoveFromWishlist(ctx, 1, 6), constant.ErrNotInWishlist)

	f.wishlistRepo.On("Remove", mock.Anything, uint64(1), uint64(7)).Return(errors.New("db")).Once()
	assertErrCode(t, app.RemoveFromWishlist(ctx, 1, 7), constant.ErrInternal)
}
