package product

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	productRepo "github.com/muhammadheryan/storefront/repository/product"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	Version        = "1.0.0"
)

var sortColumns = map[string]bool{
	"id":         true,
	"title":      true,
	"price":      true,
	"created_at": true,
	"updated_at": true,
}

type ProductApp interface {
	ListProducts(ctx context.Context, q *model.ProductQuery) (*model.ProductListResponse, error)
	ListSellerProducts(ctx context.Context, sellerID uint64) ([]model.ProductEntity, error)
	GetProduct(ctx context.Context, id uint64) (*model.ProductDetail, error)
	CreateProduct(ctx context.Context, sellerID uint64, req *model.ProductRequest) (*model.ProductEntity, error)
	UpdateProduct(ctx context.Context, sellerID, id uint64, req *model.ProductRequest) (*model.ProductEntity, error)
	DeleteProduct(ctx context.Context, sellerID, id uint64) error
	UploadCover(ctx context.Context, sellerID, id uint64, upload model.CoverUpload, body io.Reader) (*model.ProductEntity, error)
	Health(ctx context.Context) *model.ProductHealth
	DatabaseDebug(ctx context.Context) *model.DatabaseDebug
}

// CoverStore persists cover images and returns their public URL.
type CoverStore interface {
	PutCover(ctx context.Context, productID uint64, upload model.CoverUpload, body io.Reader) (string, error)
}

type productAppImpl struct {
	productRepo productRepo.ProductRepository
	covers      CoverStore
}

// NewProductApp builds the product use cases; covers may be nil when object
// storage is not configured.
func NewProductApp(productRepo productRepo.ProductRepository, covers CoverStore) ProductApp {
	return &productAppImpl{productRepo: productRepo, covers: covers}
}

// NormalizeQuery clamps paging to page >= 1 and per_page in [1, MaxPerPage]
// and falls back to the default sort. A nil query gets DefaultPerPage.
func NormalizeQuery(q *model.ProductQuery) *model.ProductQuery {
	out := &model.ProductQuery{PerPage: DefaultPerPage}
	if q != nil {
		*out = *q
	}
	if out.Page <= 0 {
		out.Page = 1
	}
	if out.PerPage < 1 {
		out.PerPage = 1
	}
	if out.PerPage > MaxPerPage {
		out.PerPage = MaxPerPage
	}
	out.Search = strings.TrimSpace(out.Search)
	if !sortColumns[out.SortBy] {
		out.SortBy = "id"
	}
	out.SortOrder = strings.ToLower(out.SortOrder)
	if out.SortOrder != "desc" {
		out.SortOrder = "asc"
	}
	return out
}

func (s *productAppImpl) ListProducts(ctx context.Context, q *model.ProductQuery) (*model.ProductListResponse, error) {
	query := NormalizeQuery(q)

	items, total, err := s.productRepo.List(ctx, query)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if items == nil {
		items = []model.ProductEntity{}
	}

	return &model.ProductListResponse{
		Items: items,
		Meta:  buildMeta(total, query.Page, query.PerPage),
	}, nil
}

func buildMeta(total int64, page, perPage int) model.ProductListMeta {
	totalPages := int64(math.Ceil(float64(total) / float64(perPage)))
	meta := model.ProductListMeta{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		HasNext:    int64(page) < totalPages,
		HasPrev:    page > 1,
	}
	if meta.HasNext {
		next := page + 1
		meta.NextPage = &next
	}
	if meta.HasPrev {
		prev := page - 1
		meta.PrevPage = &prev
	}
	return meta
}

func (s *productAppImpl) ListSellerProducts(ctx context.Context, sellerID uint64) ([]model.ProductEntity, error) {
	items, err := s.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		logger.Error("[ListSellerProducts] error productRepo.ListBySeller", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if items == nil {
		items = []model.ProductEntity{}
	}
	return items, nil
}

func (s *productAppImpl) GetProduct(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	result, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if result == nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}

	return result, nil
}

func (s *productAppImpl) CreateProduct(ctx context.Context, sellerID uint64, req *model.ProductRequest) (*model.ProductEntity, error) {
	if fields := CheckProduct(req); fields != nil {
		return nil, errors.SetValidationError(fields)
	}

	now := time.Now().UTC()
	entity := &model.ProductEntity{
		SellerID:    sellerID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if cover := strings.TrimSpace(req.CoverImageURL); cover != "" {
		entity.CoverImageURL = &cover
	}

	created, err := s.productRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[CreateProduct] error productRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return created, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, sellerID, id uint64, req *model.ProductRequest) (*model.ProductEntity, error) {
	current, err := s.owned(ctx, "UpdateProduct", sellerID, id)
	if err != nil {
		return nil, err
	}

	if fields := CheckProduct(req); fields != nil {
		return nil, errors.SetValidationError(fields)
	}

	entity := current.ProductEntity
	entity.Title = strings.TrimSpace(req.Title)
	entity.Description = strings.TrimSpace(req.Description)
	entity.Price = *req.Price
	entity.UpdatedAt = time.Now().UTC()
	if cover := strings.TrimSpace(req.CoverImageURL); cover != "" {
		entity.CoverImageURL = &cover
	}

	if err := s.productRepo.Update(ctx, &entity); err != nil {
		logger.Error("[UpdateProduct] error productRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return &entity, nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, sellerID, id uint64) error {
	if _, err := s.owned(ctx, "DeleteProduct", sellerID, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("[DeleteProduct] error productRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *productAppImpl) UploadCover(ctx context.Context, sellerID, id uint64, upload model.CoverUpload, body io.Reader) (*model.ProductEntity, error) {
	if s.covers == nil {
		return nil, errors.SetCustomError(constant.ErrStorageDisabled)
	}

	current, err := s.owned(ctx, "UploadCover", sellerID, id)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, errors.SetValidationError(map[string][]string{
			"file": {"Cover must be an image."},
		})
	}

	url, err := s.covers.PutCover(ctx, id, upload, body)
	if err != nil {
		logger.Error("[UploadCover] error covers.PutCover", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.productRepo.UpdateCover(ctx, id, url); err != nil {
		logger.Error("[UploadCover] error productRepo.UpdateCover", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	entity := current.ProductEntity
	entity.CoverImageURL = &url
	return &entity, nil
}

func (s *productAppImpl) Health(ctx context.Context) *model.ProductHealth {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		logger.Error("[Health] error productRepo.Count", zap.String("error", err.Error()))
		return &model.ProductHealth{Status: "unhealthy", Database: "disconnected", Version: Version}
	}
	return &model.ProductHealth{Status: "healthy", Database: "connected", ProductCount: &count, Version: Version}
}

func (s *productAppImpl) DatabaseDebug(ctx context.Context) *model.DatabaseDebug {
	out := &model.DatabaseDebug{Tables: []string{}}

	tables, err := s.productRepo.Tables(ctx)
	if err != nil {
		logger.Error("[DatabaseDebug] error productRepo.Tables", zap.String("error", err.Error()))
		out.Error = err.Error()
		return out
	}
	out.Tables = tables
	for _, t := range tables {
		if t == "products" {
			out.TableExists = true
		}
	}

	if !out.TableExists {
		return out
	}
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		logger.Error("[DatabaseDebug] error productRepo.Count", zap.String("error", err.Error()))
		out.Error = err.Error()
		return out
	}
	out.ProductCount = count
	return out
}

func (s *productAppImpl) owned(ctx context.Context, method string, sellerID, id uint64) (*model.ProductDetail, error) {
	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("["+method+"] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if current == nil {
		return nil, errors.SetCustomError(constant.ErrProductNotFound)
	}
	if current.SellerID != sellerID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	return current, nil
}

// CheckProduct returns per-field messages for an invalid product payload.
func CheckProduct(req *model.ProductRequest) map[string][]string {
	fields := map[string][]string{}
	title := strings.TrimSpace(req.Title)
	switch {
	case title == "":
		fields["title"] = append(fields["title"], "Product title cannot be empty")
	case len([]rune(title)) > 100:
		fields["title"] = append(fields["title"], "Product title must be under 100 characters")
	}
	if strings.TrimSpace(req.Description) == "" {
		fields["description"] = append(fields["description"], "Product description cannot be empty")
	}
	switch {
	case req.Price == nil:
		fields["price"] = append(fields["price"], "Price is required")
	case *req.Price < 0:
		fields["price"] = append(fields["price"], "Price cannot be negative")
	}
	if len(req.CoverImageURL) > 255 {
		fields["cover_image_url"] = append(fields["cover_image_url"], "Cover image URL must be under 255 characters")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
