package product_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	appproduct "github.com/muhammadheryan/storefront/application/product"
	"github.com/muhammadheryan/storefront/constant"
	appmocks "github.com/muhammadheryan/storefront/mocks/application/product"
	productmocks "github.com/muhammadheryan/storefront/mocks/repository/product"
	"github.com/muhammadheryan/storefront/model"
	cerr "github.com/muhammadheryan/storefront/utils/errors"
	"github.com/stretchr/testify/mock"
)

func price(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

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

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name string
		in   *model.ProductQuery
		want *model.ProductQuery
	}{
		{
			name: "defaults",
			in:   nil,
			want: &model.ProductQuery{Page: 1, PerPage: 20, SortBy: "id", SortOrder: "asc"},
		},
		{
			name: "per page capped and sort kept",
			in:   &model.ProductQuery{Page: 3, PerPage: 500, Search: "  lamp ", SortBy: "price", SortOrder: "DESC"},
			want: &model.ProductQuery{Page: 3, PerPage: 100, Search: "lamp", SortBy: "price", SortOrder: "desc"},
		},
		{
			name: "per page zero clamps to one",
			in:   &model.ProductQuery{Page: 1, PerPage: 0},
			want: &model.ProductQuery{Page: 1, PerPage: 1, SortBy: "id", SortOrder: "asc"},
		},
		{
			name: "negative per page clamps to one",
			in:   &model.ProductQuery{Page: 2, PerPage: -7},
			want: &model.ProductQuery{Page: 2, PerPage: 1, SortBy: "id", SortOrder: "asc"},
		},
		{
			name: "unknown sort column falls back to id",
			in:   &model.ProductQuery{Page: -1, PerPage: 5, SortBy: "password", SortOrder: "sideways"},
			want: &model.ProductQuery{Page: 1, PerPage: 5, SortBy: "id", SortOrder: "asc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := appproduct.NormalizeQuery(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("NormalizeQuery() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_ListProducts(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
	}
	type args struct {
		ctx context.Context
		q   *model.ProductQuery
	}
	items := []model.ProductEntity{
		{ID: 1, Title: "Product 1", Price: 50},
		{ID: 2, Title: "Product 2", Price: 75},
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.ProductListResponse
		wantErr  bool
	}{
		{
			name:   "success: middle page has both neighbours",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			args:   args{ctx: context.Background(), q: &model.ProductQuery{Page: 2, PerPage: 2}},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, &model.ProductQuery{Page: 2, PerPage: 2, SortBy: "id", SortOrder: "asc"}).
					Return(items, int64(5), nil).
					Once()
			},
			want: &model.ProductListResponse{
				Items: items,
				Meta: model.ProductListMeta{
					Total: 5, Page: 2, PerPage: 2, TotalPages: 3,
					HasNext: true, HasPrev: true, NextPage: intPtr(3), PrevPage: intPtr(1),
				},
			},
		},
		{
			name:   "success: empty catalog",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			args:   args{ctx: context.Background(), q: nil},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, mock.Anything).
					Return(nil, int64(0), nil).
					Once()
			},
			want: &model.ProductListResponse{
				Items: []model.ProductEntity{},
				Meta:  model.ProductListMeta{Total: 0, Page: 1, PerPage: 20, TotalPages: 0},
			},
		},
		{
			name:   "error: repository failure",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			args:   args{ctx: context.Background(), q: &model.ProductQuery{}},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, mock.Anything).
					Return(nil, int64(0), errors.New("db error")).
					Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appproduct.NewProductApp(tt.fields.productRepo, nil)

			got, err := app.ListProducts(tt.args.ctx, tt.args.q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListProducts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, constant.ErrInternal)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ListProducts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_GetProduct(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	app := appproduct.NewProductApp(repo, nil)
	ctx := context.Background()

	detail := &model.ProductDetail{
		ProductEntity: model.ProductEntity{ID: 1, SellerID: 2, Title: "Lamp"},
		Seller:        &model.Seller{ID: 2, Username: "seller"},
	}
	repo.On("GetByID", mock.Anything, uint64(1)).Return(detail, nil).Once()
	got, err := app.GetProduct(ctx, 1)
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if !reflect.DeepEqual(got, detail) {
		t.Fatalf("GetProduct() = %+v, want %+v", got, detail)
	}

	repo.On("GetByID", mock.Anything, uint64(99)).Return(nil, nil).Once()
	_, err = app.GetProduct(ctx, 99)
	assertErrCode(t, err, constant.ErrProductNotFound)

	repo.On("GetByID", mock.Anything, uint64(3)).Return(nil, errors.New("db error")).Once()
	_, err = app.GetProduct(ctx, 3)
	assertErrCode(t, err, constant.ErrInternal)
}

func TestProductApp_CreateProduct(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
	}
	tests := []struct {
		name       string
		fields     fields
		req        *model.ProductRequest
		mockCall   func(f fields)
		wantErr    bool
		errCode    constant.ErrorType
		wantFields []string
	}{
		{
			name:   "success: trims and stores",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			req: &model.ProductRequest{
				Title:         "  Desk Lamp ",
				Description:   " Warm light ",
				Price:         price(19.99),
				CoverImageURL: "https://img.example.com/lamp.png",
			},
			mockCall: func(f fields) {
				f.productRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(p *model.ProductEntity) bool {
						return p.SellerID == 5 && p.Title == "Desk Lamp" && p.Description == "Warm light" &&
							p.Price == 19.99 && p.CoverImageURL != nil
					})).
					Return(&model.ProductEntity{ID: 10, SellerID: 5, Title: "Desk Lamp"}, nil).
					Once()
			},
		},
		{
			name:   "success: zero price is allowed",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			req:    &model.ProductRequest{Title: "Freebie", Description: "Gift", Price: price(0)},
			mockCall: func(f fields) {
				f.productRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(p *model.ProductEntity) bool {
						return p.CoverImageURL == nil && p.Price == 0
					})).
					Return(&model.ProductEntity{ID: 11}, nil).
					Once()
			},
		},
		{
			name:       "error: blank title and negative price",
			fields:     fields{productRepo: productmocks.NewProductRepository(t)},
			req:        &model.ProductRequest{Title: "   ", Description: "ok", Price: price(-1)},
			wantErr:    true,
			errCode:    constant.ErrInvalidRequest,
			wantFields: []string{"title", "price"},
		},
		{
			name:       "error: title too long and missing description",
			fields:     fields{productRepo: productmocks.NewProductRepository(t)},
			req:        &model.ProductRequest{Title: strings.Repeat("x", 101), Price: price(1)},
			wantErr:    true,
			errCode:    constant.ErrInvalidRequest,
			wantFields: []string{"title", "description"},
		},
		{
			name:       "error: missing price",
			fields:     fields{productRepo: productmocks.NewProductRepository(t)},
			req:        &model.ProductRequest{Title: "Lamp", Description: "Light"},
			wantErr:    true,
			errCode:    constant.ErrInvalidRequest,
			wantFields: []string{"price"},
		},
		{
			name:   "error: create fails",
			fields: fields{productRepo: productmocks.NewProductRepository(t)},
			req:    &model.ProductRequest{Title: "Lamp", Description: "Light", Price: price(3)},
			mockCall: func(f fields) {
				f.productRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appproduct.NewProductApp(tt.fields.productRepo, nil)

			got, err := app.CreateProduct(context.Background(), 5, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateProduct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				var ce cerr.CustomError
				errors.As(err, &ce)
				for _, f := range tt.wantFields {
					if len(ce.Fields()[f]) == 0 {
						t.Fatalf("missing field error for %q in %v", f, ce.Fields())
					}
				}
				return
			}
			if got == nil || got.ID == 0 {
				t.Fatalf("CreateProduct() = %+v", got)
			}
		})
	}
}

func TestProductApp_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	owned := &model.ProductDetail{ProductEntity: model.ProductEntity{ID: 1, SellerID: 5, Title: "Old", Description: "Old", Price: 1}}

	t.Run("update by owner", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		app := appproduct.NewProductApp(repo, nil)
		repo.On("GetByID", mock.Anything, uint64(1)).Return(owned, nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.ProductEntity) bool {
			return p.ID == 1 && p.Title == "New" && p.Price == 9
		})).Return(nil).Once()

		got, err := app.UpdateProduct(ctx, 5, 1, &model.ProductRequest{Title: "New", Description: "Desc", Price: price(9)})
		if err != nil {
			t.Fatalf("UpdateProduct() error = %v", err)
		}
		if got.Title != "New" || got.SellerID != 5 {
			t.Fatalf("UpdateProduct() = %+v", got)
		}
	})

	t.Run("update by someone else", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		app := appproduct.NewProductApp(repo, nil)
		repo.On("GetByID", mock.Anything, uint64(1)).Return(owned, nil).Once()

		_, err := app.UpdateProduct(ctx, 6, 1, &model.ProductRequest{Title: "New", Description: "Desc", Price: price(9)})
		assertErrCode(t, err, constant.ErrForbidden)
	})

	t.Run("delete missing product", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		app := appproduct.NewProductApp(repo, nil)
		repo.On("GetByID", mock.Anything, uint64(2)).Return(nil, nil).Once()

		assertErrCode(t, app.DeleteProduct(ctx, 5, 2), constant.ErrProductNotFound)
	})

	t.Run("delete by owner", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		app := appproduct.NewProductApp(repo, nil)
		repo.On("GetByID", mock.Anything, uint64(1)).Return(owned, nil).Once()
		repo.On("Delete", mock.Anything, uint64(1)).Return(nil).Once()

		if err := app.DeleteProduct(ctx, 5, 1); err != nil {
			t.Fatalf("DeleteProduct() error = %v", err)
		}
	})
}

func TestProductApp_UploadCover(t *testing.T) {
	ctx := context.Background()
	owned := &model.ProductDetail{ProductEntity: model.ProductEntity{ID: 1, SellerID: 5}}
	upload := model.CoverUpload{FileName: "lamp.png", ContentType: "image/png", Size: 4}

	t.Run("storage disabled", func(t *testing.T) {
		app := appproduct.NewProductApp(productmocks.NewProductRepository(t), nil)
		_, err := app.UploadCover(ctx, 5, 1, upload, strings.NewReader("data"))
		assertErrCode(t, err, constant.ErrStorageDisabled)
	})

	t.Run("stores and records url", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		covers := appmocks.NewCoverStore(t)
		app := appproduct.NewProductApp(repo, covers)
		body := strings.NewReader("data")

		repo.On("GetByID", mock.Anything, uint64(1)).Return(owned, nil).Once()
		covers.On("PutCover", mock.Anything, uint64(1), upload, body).Return("http://minio/covers/1.png", nil).Once()
		repo.On("UpdateCover", mock.Anything, uint64(1), "http://minio/covers/1.png").Return(nil).Once()

		got, err := app.UploadCover(ctx, 5, 1, upload, body)
		if err != nil {
			t.Fatalf("UploadCover() error = %v", err)
		}
		if got.CoverImageURL == nil || *got.CoverImageURL != "http://minio/covers/1.png" {
			t.Fatalf("UploadCover() cover = %v", got.CoverImageURL)
		}
	})

	t.Run("rejects non images", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		app := appproduct.NewProductApp(repo, appmocks.NewCoverStore(t))
		repo.On("GetByID", mock.Anything, uint64(1)).Return(owned, nil).Once()

		_, err := app.UploadCover(ctx, 5, 1, model.CoverUpload{FileName: "x.txt", ContentType: "text/plain"}, strings.NewReader("x"))
		assertErrCode(t, err, constant.ErrInvalidRequest)
	})
}

func TestProductApp_HealthAndDebug(t *testing.T) {
	ctx := context.Background()

	repo := productmocks.NewProductRepository(t)
	app := appproduct.NewProductApp(repo, nil)
	repo.On("Count", mock.Anything).Return(int64(4), nil).Once()
	h := app.Health(ctx)
	if h.Status != "healthy" || h.ProductCount == nil || *h.ProductCount != 4 {
		t.Fatalf("Health() = %+v", h)
	}

	repo.On("Count", mock.Anything).Return(int64(0), errors.New("gone")).Once()
	h = app.Health(ctx)
	if h.Status != "unhealthy" || h.Database != "disconnected" || h.ProductCount != nil {
		t.Fatalf("Health() = %+v", h)
	}

	repo.On("Tables", mock.Anything).Return([]string{"users", "products"}, nil).Once()
	repo.On("Count", mock.Anything).Return(int64(2), nil).Once()
	d := app.DatabaseDebug(ctx)
	if !d.TableExists || d.ProductCount != 2 || d.Error != "" {
		t.Fatalf("DatabaseDebug() = %+v", d)
	}

	repo.On("Tables", mock.Anything).Return(nil, errors.New("denied")).Once()
	d = app.DatabaseDebug(ctx)
	if d.Error != "denied" || d.TableExists {
		t.Fatalf("DatabaseDebug() = %+v", d)
	}
}
