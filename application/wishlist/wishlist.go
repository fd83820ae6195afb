package wishlist

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	productrepo "github.com/muhammadheryan/storefront/repository/product"
	redisrepo "github.com/muhammadheryan/storefront/repository/redis"
	wishlistrepo "github.com/muhammadheryan/storefront/repository/wishlist"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// CacheTTL bounds how long a cached wishlist is served.
const CacheTTL = 10 * time.Minute

type WishlistApp interface {
	GetWishlist(ctx context.Context, userID uint64) ([]model.WishlistItem, error)
	AddToWishlist(ctx context.Context, userID, productID uint64) (*model.WishlistAddResponse, error)
	RemoveFromWishlist(ctx context.Context, userID, productID uint64) error
}

type wishlistAppImpl struct {
	wishlistRepo wishlistrepo.WishlistRepository
	productRepo  productrepo.ProductRepository
	redisRepo    redisrepo.Repository
}

func NewWishlistApp(wishlistRepo wishlistrepo.WishlistRepository, productRepo productrepo.ProductRepository, redisRepo redisrepo.Repository) WishlistApp {
	return &wishlistAppImpl{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		redisRepo:    redisRepo,
	}
}

func CacheKey(userID uint64) string {
	return fmt.Sprintf("wishlist:%d", userID)
}

func (s *wishlistAppImpl) GetWishlist(ctx context.Context, userID uint64) ([]model.WishlistItem, error) {
	key := CacheKey(userID)

	cached, err := s.redisRepo.Get(ctx, key)
	switch {
	case err == nil:
		var items []model.WishlistItem
		if err := json.Unmarshal([]byte(cached), &items); err == nil {
			return items, nil
		}
		logger.Warn("[GetWishlist] dropping unreadable cache entry", zap.String("key", key))
	case !redisrepo.IsMiss(err):
		logger.Warn("[GetWishlist] err redisRepo.Get", zap.String("error", err.Error()))
	}

	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[GetWishlist] err wishlistRepo.ListByUser", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if items == nil {
		items = []model.WishlistItem{}
	}

	payload, err := json.Marshal(items)
	if err == nil {
		err = s.redisRepo.SetWithTTL(ctx, key, string(payload), CacheTTL)
	}
	if err != nil {
		logger.Warn("[GetWishlist] err cache wishlist", zap.String("error", err.Error()))
	}

	return items, nil
}

func (s *wishlistAppImpl) AddToWishlist(ctx context.Context, userID, productID uint64) (*model.WishlistAddResponse, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Error("[AddToWishlist] err productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}

	id, err := s.wishlistRepo.Add(ctx, userID, productID)
	if stderrors.Is(err, wishlistrepo.ErrDuplicate) {
		return nil, errors.SetCustomError(constant.ErrAlreadyInWishlist)
	}
	if err != nil {
		logger.Error("[AddToWishlist] err wishlistRepo.Add", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.invalidate(ctx, "AddToWishlist", userID)
	return &model.WishlistAddResponse{ID: id}, nil
}

func (s *wishlistAppImpl) RemoveFromWishlist(ctx context.Context, userID, productID uint64) error {
	err := s.wishlistRepo.Remove(ctx, userID, productID)
	if stderrors.Is(err, wishlistrepo.ErrNotFound) {
		return errors.SetCustomError(constant.ErrNotInWishlist)
	}
	if err != nil {
		logger.Error("[RemoveFromWishlist] err wishlistRepo.Remove", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.invalidate(ctx, "RemoveFromWishlist", userID)
	return nil
}

func (s *wishlistAppImpl) invalidate(ctx context.Context, method string, userID uint64) {
	if err := s.redisRepo.Delete(ctx, CacheKey(userID)); err != nil {
		logger.Warn("["+method+"] err invalidate cache", zap.String("error", err.Error()))
	}
}
