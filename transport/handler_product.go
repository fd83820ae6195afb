package transport

import (
	"fmt"
	"net/http"
	"strconv"

	productapp "github.com/muhammadheryan/storefront/application/product"
	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	utilsContext "github.com/muhammadheryan/storefront/utils/context"
	"github.com/muhammadheryan/storefront/utils/errors"
)

const (
	maxCoverSize = 10 << 20
	// maxFormBody caps any form body, leaving room for the multipart framing.
	maxFormBody = maxCoverSize + 1<<20
)

// ListProducts handler
// @Summary List products
// @Description Paginated catalog with search and sorting
// @Tags Products
// @Produce json
// @Param page query int false "Page, starting at 1"
// @Param per_page query int false "Items per page, max 100"
// @Param search query string false "Substring of title or description"
// @Param sort_by query string false "id, title, price, created_at or updated_at"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} SuccessResponse{data=[]model.ProductEntity,meta=model.ProductListMeta}
// @Failure 400 {object} ErrorResponse
// @Router /api/products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := productQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.ListProducts(ctx, q)
	if err != nil {
		writeError(w, err)
		return
	}

	message := "No products found"
	if len(res.Items) > 0 {
		message = fmt.Sprintf("Successfully retrieved %d products", len(res.Items))
	}
	writeResult(w, http.StatusOK, message, res.Items, res.Meta)
}

func productQuery(r *http.Request) (*model.ProductQuery, error) {
	values := r.URL.Query()
	q := &model.ProductQuery{
		Page:      1,
		PerPage:   productapp.DefaultPerPage,
		Search:    values.Get("search"),
		SortBy:    values.Get("sort_by"),
		SortOrder: values.Get("sort_order"),
	}
	fields := map[string][]string{}
	for name, dst := range map[string]*int{"page": &q.Page, "per_page": &q.PerPage} {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields[name] = append(fields[name], "Must be an integer")
			continue
		}
		*dst = n
	}
	if len(fields) > 0 {
		return nil, errors.SetValidationError(fields)
	}
	return q, nil
}

// ListMyProducts handler
// @Summary List the caller's products
// @Tags Products
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]model.ProductEntity}
// @Failure 401 {object} ErrorResponse
// @Router /api/products/current [get]
func (s *RestHandler) ListMyProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.ProductApp.ListSellerProducts(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Product detail
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} SuccessResponse{data=model.ProductDetail}
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.GetProduct(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Product retrieved successfully", res, nil)
}

// CreateProduct handler
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body model.ProductRequest true "Product"
// @Success 201 {object} SuccessResponse{data=model.ProductEntity}
// @Failure 400 {object} ErrorResponse
// @Router /api/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.CreateProduct(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusCreated, "Product created successfully", res, nil)
}

// UpdateProduct handler
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.ProductRequest true "Product"
// @Success 200 {object} SuccessResponse{data=model.ProductEntity}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.UpdateProduct(ctx, userID, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Product updated successfully", res, nil)
}

// DeleteProduct handler
// @Summary Delete product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.ProductApp.DeleteProduct(ctx, userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Product deleted successfully", nil, nil)
}

// UploadCover handler
// @Summary Upload a cover image
// @Tags Products
// @Accept mpfd
// @Produce json
// @Param id path int true "Product ID"
// @Param file formData file true "Image"
// @Success 200 {object} SuccessResponse{data=model.ProductEntity}
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/products/{id}/cover [post]
func (s *RestHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.SetValidationError(map[string][]string{"file": {"An image file is required"}}))
		return
	}
	defer file.Close()

	if header.Size > maxCoverSize {
		writeError(w, errors.SetValidationError(map[string][]string{"file": {"Image must be 10MB or smaller"}}))
		return
	}

	upload := model.CoverUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
	res, err := s.ProductApp.UploadCover(ctx, userID, id, upload, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusOK, "Cover image uploaded", res, nil)
}

// ProductHealth handler
// @Summary Products API health
// @Tags System
// @Produce json
// @Success 200 {object} SuccessResponse{data=model.ProductHealth}
// @Router /api/products/health [get]
func (s *RestHandler) ProductHealth(w http.ResponseWriter, r *http.Request) {
	writeResult(w, http.StatusOK, "Products API is healthy", s.ProductApp.Health(r.Context()), nil)
}

// DatabaseDebug handler
// @Summary Database debug information
// @Tags System
// @Produce json
// @Success 200 {object} model.DatabaseDebug
// @Router /api/database/debug [get]
func (s *RestHandler) DatabaseDebug(w http.ResponseWriter, r *http.Request) {
	res := s.ProductApp.DatabaseDebug(r.Context())
	status := http.StatusOK
	if res.Error != "" {
		status = constant.ErrorTypeHTTPCode[constant.ErrInternal]
	}
	writeJSON(w, status, res)
}
