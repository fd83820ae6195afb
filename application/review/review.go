package review

import (
	"context"
	stderrors "errors"
	"math"
	"strings"
	"time"

	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	productrepo "github.com/muhammadheryan/storefront/repository/product"
	reviewrepo "github.com/muhammadheryan/storefront/repository/review"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	validatorx "github.com/muhammadheryan/storefront/utils/validator"
	"go.uber.org/zap"
)

type ReviewApp interface {
	ListReviews(ctx context.Context, productID uint64) (*model.ReviewListResponse, error)
	ListMyReviews(ctx context.Context, userID uint64) ([]model.Review, error)
	CreateReview(ctx context.Context, userID, productID uint64, req *model.ReviewRequest) (*model.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID uint64, req *model.ReviewRequest) (*model.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID uint64) error
}

type reviewAppImpl struct {
	reviewRepo  reviewrepo.ReviewRepository
	productRepo productrepo.ProductRepository
}

func NewReviewApp(reviewRepo reviewrepo.ReviewRepository, productRepo productrepo.ProductRepository) ReviewApp {
	return &reviewAppImpl{reviewRepo: reviewRepo, productRepo: productRepo}
}

func (s *reviewAppImpl) ListReviews(ctx context.Context, productID uint64) (*model.ReviewListResponse, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Error("[ListReviews] err productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		logger.Error("[ListReviews] err reviewRepo.ListByProduct", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	return &model.ReviewListResponse{
		Reviews:       reviews,
		TotalReviews:  len(reviews),
		AverageRating: averageRating(reviews),
	}, nil
}

func (s *reviewAppImpl) ListMyReviews(ctx context.Context, userID uint64) ([]model.Review, error) {
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[ListMyReviews] err reviewRepo.ListByUser", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}

func (s *reviewAppImpl) CreateReview(ctx context.Context, userID, productID uint64, req *model.ReviewRequest) (*model.Review, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Error("[CreateReview] err productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}

	form, err := checkForm(req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.reviewRepo.Create(ctx, &model.ReviewEntity{
		UserID:    userID,
		ProductID: productID,
		Rating:    form.Rating,
		Title:     form.Title,
		Content:   form.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		logger.Error("[CreateReview] err reviewRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	full, err := s.reviewRepo.GetByID(ctx, created.ID)
	if err != nil {
		logger.Warn("[CreateReview] err reviewRepo.GetByID", zap.Uint64("review_id", created.ID), zap.String("error", err.Error()))
	}
	if err != nil || full == nil {
		// the row exists; serve it without the author name
		return &model.Review{ReviewEntity: *created, Author: model.ReviewAuthor{ID: userID}}, nil
	}
	return full, nil
}

func (s *reviewAppImpl) UpdateReview(ctx context.Context, userID, reviewID uint64, req *model.ReviewRequest) (*model.Review, error) {
	current, err := s.owned(ctx, "UpdateReview", userID, reviewID)
	if err != nil {
		return nil, err
	}

	form, err := checkForm(req)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Rating = form.Rating
	updated.Title = form.Title
	updated.Content = form.Content
	updated.UpdatedAt = time.Now().UTC()

	if err := s.reviewRepo.Update(ctx, &updated.ReviewEntity); err != nil {
		if stderrors.Is(err, reviewrepo.ErrNotFound) {
			return nil, errors.SetCustomError(constant.ErrReviewNotFound)
		}
		logger.Error("[UpdateReview] err reviewRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return &updated, nil
}

func (s *reviewAppImpl) DeleteReview(ctx context.Context, userID, reviewID uint64) error {
	if _, err := s.owned(ctx, "DeleteReview", userID, reviewID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if stderrors.Is(err, reviewrepo.ErrNotFound) {
			return errors.SetCustomError(constant.ErrReviewNotFound)
		}
		logger.Error("[DeleteReview] err reviewRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *reviewAppImpl) owned(ctx context.Context, method string, userID, reviewID uint64) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		logger.Error("["+method+"] err reviewRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if review == nil {
		return nil, errors.SetCustomError(constant.ErrReviewNotFound)
	}
	if review.UserID != userID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	return review, nil
}

// checkForm trims the text fields and validates the result.
func checkForm(req *model.ReviewRequest) (*model.ReviewRequest, error) {
	form := &model.ReviewRequest{
		Rating:  req.Rating,
		Title:   strings.TrimSpace(req.Title),
		Content: strings.TrimSpace(req.Content),
	}
	if err := validatorx.ValidateStruct(form); err != nil {
		if fields := validatorx.FieldErrors(err); fields != nil {
			return nil, errors.SetValidationError(fields)
		}
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return form, nil
}

func averageRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*100) / 100
}
