package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/muhammadheryan/storefront/model"
)

// auth

func (c *Client) Signup(ctx context.Context, req *model.SignupRequest) (*model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.call(ctx, http.MethodPost, "/api/auth/signup", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, identifier, password string) (*model.LoginResponse, error) {
	var out model.LoginResponse
	req := model.LoginRequest{Identifier: identifier, Password: password}
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// Me returns the logged in user.
func (c *Client) Me(ctx context.Context) (*model.PublicUser, error) {
	var out model.PublicUser
	if err := c.call(ctx, http.MethodGet, "/api/auth/", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// products

func (c *Client) ListProducts(ctx context.Context, q model.ProductQuery) (*model.ProductListResponse, error) {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.SortBy != "" {
		values.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		values.Set("sort_order", q.SortOrder)
	}
	path := "/api/products"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	out := &model.ProductListResponse{Items: []model.ProductEntity{}}
	if err := c.call(ctx, http.MethodGet, path, nil, &out.Items, &out.Meta); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyProducts(ctx context.Context) ([]model.ProductEntity, error) {
	var out []model.ProductEntity
	if err := c.call(ctx, http.MethodGet, "/api/products/current", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	var out model.ProductDetail
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.ProductEntity, error) {
	var out model.ProductEntity
	if err := c.call(ctx, http.MethodPost, "/api/products", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint64, req *model.ProductRequest) (*model.ProductEntity, error) {
	var out model.ProductEntity
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil, nil)
}

// UploadCover sends an image as the multipart field "file".
func (c *Client) UploadCover(ctx context.Context, id uint64, fileName, contentType string, image io.Reader) (*model.ProductEntity, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(fileName)))
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	var out model.ProductEntity
	path := fmt.Sprintf("/api/products/%d/cover", id)
	if err := c.send(ctx, http.MethodPost, path, &buf, form.FormDataContentType(), &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// cart

func (c *Client) GetCart(ctx context.Context) (*model.CartResponse, error) {
	var out model.CartResponse
	if err := c.call(ctx, http.MethodGet, "/api/cart/", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddToCart(ctx context.Context, productID uint64, quantity int) error {
	req := model.AddToCartRequest{ProductID: productID, Quantity: &quantity}
	return c.call(ctx, http.MethodPost, "/api/cart/add", req, nil, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID uint64, quantity int) error {
	req := model.UpdateCartItemRequest{Quantity: &quantity}
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/cart/update/%d", itemID), req, nil, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, itemID uint64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/remove/%d", itemID), nil, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/api/cart/clear", nil, nil, nil)
}

func (c *Client) Checkout(ctx context.Context) (*model.CheckoutResponse, error) {
	var out model.CheckoutResponse
	if err := c.call(ctx, http.MethodPost, "/api/cart/checkout", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// orders

func (c *Client) ListOrders(ctx context.Context) ([]model.OrderDetail, error) {
	var out []model.OrderDetail
	if err := c.call(ctx, http.MethodGet, "/api/orders", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// wishlist

func (c *Client) GetWishlist(ctx context.Context) ([]model.WishlistItem, error) {
	var out []model.WishlistItem
	if err := c.call(ctx, http.MethodGet, "/api/wishlist/", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToWishlist(ctx context.Context, productID uint64) (*model.WishlistAddResponse, error) {
	var out model.WishlistAddResponse
	if err := c.call(ctx, http.MethodPost, fmt.Sprintf("/api/wishlist/%d", productID), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveFromWishlist(ctx context.Context, productID uint64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d", productID), nil, nil, nil)
}

// reviews

func (c *Client) ListReviews(ctx context.Context, productID uint64) (*model.ReviewListResponse, error) {
	var out model.ReviewListResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/reviews", productID), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyReviews(ctx context.Context) ([]model.Review, error) {
	var out []model.Review
	if err := c.call(ctx, http.MethodGet, "/api/my-reviews", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateReview(ctx context.Context, productID uint64, req *model.ReviewRequest) (*model.Review, error) {
	var out model.Review
	if err := c.call(ctx, http.MethodPost, fmt.Sprintf("/api/products/%d/reviews", productID), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReview(ctx context.Context, reviewID uint64, req *model.ReviewRequest) (*model.Review, error) {
	var out model.Review
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/api/reviews/%d", reviewID), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReview(ctx context.Context, reviewID uint64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", reviewID), nil, nil, nil)
}

// system

// Health returns the body of /health.
func (c *Client) Health(ctx context.Context) (map[string]string, error) {
	out := map[string]string{}
	if err := c.raw(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProductsHealth(ctx context.Context) (*model.ProductHealth, error) {
	var out model.ProductHealth
	if err := c.call(ctx, http.MethodGet, "/api/products/health", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
