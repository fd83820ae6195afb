package store

import (
	"context"
	"sync"

	"github.com/muhammadheryan/storefront/model"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// API is the part of client.Client the store drives.
type API interface {
	Login(ctx context.Context, identifier, password string) (*model.LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*model.PublicUser, error)

	ListProducts(ctx context.Context, q model.ProductQuery) (*model.ProductListResponse, error)
	MyProducts(ctx context.Context) ([]model.ProductEntity, error)
	CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.ProductEntity, error)
	UpdateProduct(ctx context.Context, id uint64, req *model.ProductRequest) (*model.ProductEntity, error)
	DeleteProduct(ctx context.Context, id uint64) error

	GetCart(ctx context.Context) (*model.CartResponse, error)
	AddToCart(ctx context.Context, productID uint64, quantity int) error
	UpdateCartItem(ctx context.Context, itemID uint64, quantity int) error
	RemoveFromCart(ctx context.Context, itemID uint64) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) (*model.CheckoutResponse, error)

	GetWishlist(ctx context.Context) ([]model.WishlistItem, error)
	AddToWishlist(ctx context.Context, productID uint64) (*model.WishlistAddResponse, error)
	RemoveFromWishlist(ctx context.Context, productID uint64) error

	ListReviews(ctx context.Context, productID uint64) (*model.ReviewListResponse, error)
	MyReviews(ctx context.Context) ([]model.Review, error)
	CreateReview(ctx context.Context, productID uint64, req *model.ReviewRequest) (*model.Review, error)
	UpdateReview(ctx context.Context, reviewID uint64, req *model.ReviewRequest) (*model.Review, error)
	DeleteReview(ctx context.Context, reviewID uint64) error
}

type ProductsState struct {
	Items   []model.ProductEntity
	Mine    []model.ProductEntity
	Meta    model.ProductListMeta
	Loading bool
	Error   string
}

type CartState struct {
	Items      []model.CartItem
	TotalPrice float64
	ItemCount  int
	LastOrder  *model.CheckoutResponse
	Loading    bool
	Error      string
}

type WishlistState struct {
	Items   []model.WishlistItem
	Loading bool
	Error   string
}

type ReviewsState struct {
	ProductID     uint64
	Reviews       []model.Review
	MyReviews     []model.Review
	TotalReviews  int
	AverageRating float64
	Loading       bool
	Error         string
}

type SessionState struct {
	User    *model.PublicUser
	Loading bool
	Error   string
}

// State is everything the store holds. Values handed out are copies.
type State struct {
	Products ProductsState
	Cart     CartState
	Wishlist WishlistState
	Reviews  ReviewsState
	Session  SessionState
}

// Store keeps the last server response of every slice and notifies
// subscribers after each change.
type Store struct {
	api API

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

func New(api API) *Store {
	return &Store{
		api:       api,
		listeners: map[int]func(State){},
	}
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// update applies fn under the lock, then notifies listeners outside it.
func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func message(action string, err error) string {
	logger.Debug("store action failed", zap.String("action", action), zap.String("error", err.Error()))
	return err.Error()
}

func (st State) clone() State {
	out := st
	out.Products.Items = cloneSlice(st.Products.Items)
	out.Products.Mine = cloneSlice(st.Products.Mine)
	out.Cart.Items = cloneSlice(st.Cart.Items)
	if st.Cart.LastOrder != nil {
		order := *st.Cart.LastOrder
		order.Items = cloneSlice(order.Items)
		out.Cart.LastOrder = &order
	}
	out.Wishlist.Items = cloneSlice(st.Wishlist.Items)
	out.Reviews.Reviews = cloneSlice(st.Reviews.Reviews)
	out.Reviews.MyReviews = cloneSlice(st.Reviews.MyReviews)
	if st.Session.User != nil {
		user := *st.Session.User
		out.Session.User = &user
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
