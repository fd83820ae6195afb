package review_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	appreview "github.com/muhammadheryan/storefront/application/review"
	"github.com/muhammadheryan/storefront/constant"
	productmocks "github.com/muhammadheryan/storefront/mocks/repository/product"
	reviewmocks "github.com/muhammadheryan/storefront/mocks/repository/review"
	"github.com/muhammadheryan/storefront/model"
	reviewrepo "github.com/muhammadheryan/storefront/repository/review"
	cerr "github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fields struct {
	reviewRepo  *reviewmocks.ReviewRepository
	productRepo *productmocks.ProductRepository
}

func newFields(t *testing.T) fields {
	return fields{
		reviewRepo:  reviewmocks.NewReviewRepository(t),
		productRepo: productmocks.NewProductRepository(t),
	}
}

func assertErrCode(t *testing.T, err error, want constant.ErrorType) cerr.CustomError {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
	return ce
}

func review(id, userID uint64, rating int) model.Review {
	return model.Review{
		ReviewEntity: model.ReviewEntity{ID: id, UserID: userID, ProductID: 5, Rating: rating, Title: "t", Content: "c"},
		Author:       model.ReviewAuthor{ID: userID, Username: "u"},
	}
}

func TestReviewApp_ListReviews(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields)
		want     *model.ReviewListResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: average rounded to two decimals",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
				f.reviewRepo.On("ListByProduct", mock.Anything, uint64(5)).
					Return([]model.Review{review(1, 1, 5), review(2, 2, 4), review(3, 3, 4)}, nil).Once()
			},
			want: &model.ReviewListResponse{
				Reviews:       []model.Review{review(1, 1, 5), review(2, 2, 4), review(3, 3, 4)},
				TotalReviews:  3,
				AverageRating: 4.33,
			},
		},
		{
			name: "success: no reviews yet",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
				f.reviewRepo.On("ListByProduct", mock.Anything, uint64(5)).Return(nil, nil).Once()
			},
			want: &model.ReviewListResponse{Reviews: []model.Review{}},
		},
		{
			name: "error: product missing",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)

			got, err := app.ListReviews(context.Background(), 5)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListReviews() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ListReviews() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReviewApp_CreateReview(t *testing.T) {
	tests := []struct {
		name       string
		req        *model.ReviewRequest
		mockCall   func(f fields)
		wantErr    bool
		errCode    constant.ErrorType
		wantFields []string
	}{
		{
			name: "success: stored and returned with author",
			req:  &model.ReviewRequest{Rating: 4, Title: "  Nice ", Content: " Works well "},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
				f.reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.ReviewEntity) bool {
					return r.UserID == 1 && r.ProductID == 5 && r.Rating == 4 && r.Title == "Nice" && r.Content == "Works well"
				})).Return(&model.ReviewEntity{ID: 9, UserID: 1, ProductID: 5, Rating: 4}, nil).Once()
				full := review(9, 1, 4)
				f.reviewRepo.On("GetByID", mock.Anything, uint64(9)).Return(&full, nil).Once()
			},
		},
		{
			name: "error: rating out of range and title too long",
			req:  &model.ReviewRequest{Rating: 6, Title: strings.Repeat("a", 101), Content: "ok"},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
			},
			wantErr:    true,
			errCode:    constant.ErrInvalidRequest,
			wantFields: []string{"rating", "title"},
		},
		{
			name: "error: blank content",
			req:  &model.ReviewRequest{Rating: 3, Title: "fine", Content: "   "},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
			},
			wantErr:    true,
			errCode:    constant.ErrInvalidRequest,
			wantFields: []string{"content"},
		},
		{
			name: "error: product missing",
			req:  &model.ReviewRequest{Rating: 3, Title: "fine", Content: "ok"},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)

			got, err := app.CreateReview(context.Background(), 1, 5, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateReview() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				ce := assertErrCode(t, err, tt.errCode)
				for _, name := range tt.wantFields {
					if len(ce.Fields()[name]) == 0 {
						t.Fatalf("missing field error for %q in %v", name, ce.Fields())
					}
				}
				return
			}
			if got.ID != 9 || got.Author.Username != "u" {
				t.Fatalf("CreateReview() = %+v", got)
			}
		})
	}
}

func TestReviewApp_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	mine := review(3, 1, 2)

	t.Run("update own review", func(t *testing.T) {
		f := newFields(t)
		app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)
		f.reviewRepo.On("GetByID", mock.Anything, uint64(3)).Return(&mine, nil).Once()
		f.reviewRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *model.ReviewEntity) bool {
			return r.ID == 3 && r.Rating == 5 && r.Title == "Better"
		})).Return(nil).Once()

		got, err := app.UpdateReview(ctx, 1, 3, &model.ReviewRequest{Rating: 5, Title: "Better", Content: "Changed my mind"})
		if err != nil {
			t.Fatalf("UpdateReview() error = %v", err)
		}
		if got.Rating != 5 || got.Author.Username != "u" {
			t.Fatalf("UpdateReview() = %+v", got)
		}
		if mine.Rating != 2 {
			t.Fatal("UpdateReview() mutated the loaded review")
		}
	})

	t.Run("update someone else's review", func(t *testing.T) {
		f := newFields(t)
		app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)
		f.reviewRepo.On("GetByID", mock.Anything, uint64(3)).Return(&mine, nil).Once()

		_, err := app.UpdateReview(ctx, 2, 3, &model.ReviewRequest{Rating: 5, Title: "x", Content: "y"})
		assertErrCode(t, err, constant.ErrForbidden)
	})

	t.Run("delete missing review", func(t *testing.T) {
		f := newFields(t)
		app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)
		f.reviewRepo.On("GetByID", mock.Anything, uint64(4)).Return(nil, nil).Once()

		assertErrCode(t, app.DeleteReview(ctx, 1, 4), constant.ErrReviewNotFound)
	})

	t.Run("delete own review", func(t *testing.T) {
		f := newFields(t)
		app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)
		f.reviewRepo.On("GetByID", mock.Anything, uint64(3)).Return(&mine, nil).Once()
		f.reviewRepo.On("Delete", mock.Anything, uint64(3)).Return(nil).Once()

		if err := app.DeleteReview(ctx, 1, 3); err != nil {
			t.Fatalf("DeleteReview() error = %v", err)
		}
	})

	t.Run("row gone before update", func(t *testing.T) {
		f := newFields(t)
		app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)
		f.reviewRepo.On("GetByID", mock.Anything, uint64(3)).Return(&mine, nil).Once()
		f.reviewRepo.On("Update", mock.Anything, mock.Anything).Return(reviewrepo.ErrNotFound).Once()

		_, err := app.UpdateReview(ctx, 1, 3, &model.ReviewRequest{Rating: 5, Title: "x", Content: "y"})
		assertErrCode(t, err, constant.ErrReviewNotFound)
	})

	t.Run("row gone before delete", func(t *testing.T) {
		f := newFields(t)
		app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)
		f.reviewRepo.On("GetByID", mock.Anything, uint64(3)).Return(&mine, nil).Once()
		f.reviewRepo.On("Delete", mock.Anything, uint64(3)).Return(reviewrepo.ErrNotFound).Once()

		assertErrCode(t, app.DeleteReview(ctx, 1, 3), constant.ErrReviewNotFound)
	})

	t.Run("list my reviews", func(t *testing.T) {
		f := newFields(t)
		app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)
		f.reviewRepo.On("ListByUser", mock.Anything, uint64(1)).Return([]model.Review{mine}, nil).Once()

		got, err := app.ListMyReviews(ctx, 1)
		if err != nil || len(got) != 1 {
			t.Fatalf("ListMyReviews() = %v, %v", got, err)
		}
	})
}

func TestReviewApp_CreateReview_LogsLookupFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := logger.Replace(zap.New(core))
	t.Cleanup(restore)
	ctx := context.Background()
	req := &model.ReviewRequest{Rating: 4, Title: "Nice", Content: "Works"}

	t.Run("product lookup fails", func(t *testing.T) {
		f := newFields(t)
		app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)
		f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(nil, errors.New("db down")).Once()

		_, err := app.CreateReview(ctx, 1, 5, req)
		assertErrCode(t, err, constant.ErrInternal)
		if logs.FilterMessage("[CreateReview] err productRepo.GetByID").Len() != 1 {
			t.Fatalf("product lookup failure not logged: %v", logs.All())
		}
	})

	t.Run("reload after insert fails", func(t *testing.T) {
		f := newFields(t)
		app := appreview.NewReviewApp(f.reviewRepo, f.productRepo)
		f.productRepo.On("GetByID", mock.Anything, uint64(5)).Return(&model.ProductDetail{}, nil).Once()
		f.reviewRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.ReviewEntity{ID: 9, UserID: 1, ProductID: 5, Rating: 4}, nil).Once()
		f.reviewRepo.On("GetByID", mock.Anything, uint64(9)).Return(nil, errors.New("replica lag")).Once()

		got, err := app.CreateReview(ctx, 1, 5, req)
		if err != nil {
			t.Fatalf("CreateReview() error = %v", err)
		}
		if got.ID != 9 || got.Author.ID != 1 {
			t.Fatalf("CreateReview() = %+v", got)
		}
		if logs.FilterMessage("[CreateReview] err reviewRepo.GetByID").Len() != 1 {
			t.Fatalf("reload failure not logged: %v", logs.All())
		}
	})
}
