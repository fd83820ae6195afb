package transport

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	cartapp "github.com/muhammadheryan/storefront/application/cart"
	orderapp "github.com/muhammadheryan/storefront/application/order"
	productapp "github.com/muhammadheryan/storefront/application/product"
	reviewapp "github.com/muhammadheryan/storefront/application/review"
	userapp "github.com/muhammadheryan/storefront/application/user"
	wishlistapp "github.com/muhammadheryan/storefront/application/wishlist"
	"github.com/muhammadheryan/storefront/cmd/config"
	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/utils/csrf"
	"github.com/muhammadheryan/storefront/utils/errors"
	validatorx "github.com/muhammadheryan/storefront/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	Config      *config.Config
	UserApp     userapp.UserApp
	ProductApp  productapp.ProductApp
	CartApp     cartapp.CartApp
	OrderApp    orderapp.OrderApp
	WishlistApp wishlistapp.WishlistApp
	ReviewApp   reviewapp.ReviewApp
	Sessions    sessions.Store
	CSRF        *csrf.Manager

	pages  *template.Template
	router *mux.Router
}

// NewTransport builds the router and wraps it in the middleware chain:
// CORS, access log, session resolution, CSRF.
func NewTransport(rh *RestHandler) (http.Handler, error) {
	pages, err := loadTemplates(rh.Config.Server.TemplateDir)
	if err != nil {
		return nil, err
	}
	rh.pages = pages

	mux := mux.NewRouter()
	rh.router = mux

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// system
	mux.HandleFunc("/health", rh.Health).Methods(http.MethodGet)
	mux.HandleFunc("/api/test", rh.APITest).Methods(http.MethodGet)
	mux.HandleFunc("/api/docs", rh.APIDocs).Methods(http.MethodGet)
	mux.HandleFunc("/api/database/debug", rh.DatabaseDebug).Methods(http.MethodGet)

	// csrf
	mux.HandleFunc("/api/csrf/token", rh.CSRFToken).Methods(http.MethodGet)
	mux.HandleFunc("/api/csrf/debug", rh.CSRFDebug).Methods(http.MethodGet)
	mux.HandleFunc("/api/csrf/validate", rh.CSRFValidate).Methods(http.MethodPost)
	mux.HandleFunc("/api/csrf/test-endpoint", rh.CSRFTestEndpoint).Methods(http.MethodPost)

	// auth
	both(mux, "/api/auth", rh.Me, http.MethodGet)
	mux.HandleFunc("/api/auth/signup", rh.Signup).Methods(http.MethodPost)
	mux.HandleFunc("/api/auth/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/api/auth/logout", rh.Logout).Methods(http.MethodPost)

	// products
	both(mux, "/api/products", rh.ListProducts, http.MethodGet)
	both(mux, "/api/products", rh.requireUser(rh.CreateProduct), http.MethodPost)
	mux.HandleFunc("/api/products/health", rh.ProductHealth).Methods(http.MethodGet)
	mux.HandleFunc("/api/products/current", rh.requireUser(rh.ListMyProducts)).Methods(http.MethodGet)
	mux.HandleFunc("/api/products/{id:[0-9]+}", rh.GetProduct).Methods(http.MethodGet)
	mux.HandleFunc("/api/products/{id:[0-9]+}", rh.requireUser(rh.UpdateProduct)).Methods(http.MethodPut)
	mux.HandleFunc("/api/products/{id:[0-9]+}", rh.requireUser(rh.DeleteProduct)).Methods(http.MethodDelete)
	mux.HandleFunc("/api/products/{id:[0-9]+}/cover", rh.requireUser(rh.UploadCover)).Methods(http.MethodPost)

	// reviews
	mux.HandleFunc("/api/products/{id:[0-9]+}/reviews", rh.ListReviews).Methods(http.MethodGet)
	mux.HandleFunc("/api/products/{id:[0-9]+}/reviews", rh.requireUser(rh.CreateReview)).Methods(http.MethodPost)
	mux.HandleFunc("/api/my-reviews", rh.requireUser(rh.ListMyReviews)).Methods(http.MethodGet)
	mux.HandleFunc("/api/reviews/{id:[0-9]+}", rh.requireUser(rh.UpdateReview)).Methods(http.MethodPut)
	mux.HandleFunc("/api/reviews/{id:[0-9]+}", rh.requireUser(rh.DeleteReview)).Methods(http.MethodDelete)

	// cart
	both(mux, "/api/cart", rh.requireUser(rh.GetCart), http.MethodGet)
	mux.HandleFunc("/api/cart/add", rh.requireUser(rh.AddToCart)).Methods(http.MethodPost)
	mux.HandleFunc("/api/cart/update/{id:[0-9]+}", rh.requireUser(rh.UpdateCartItem)).Methods(http.MethodPut)
	mux.HandleFunc("/api/cart/remove/{id:[0-9]+}", rh.requireUser(rh.RemoveFromCart)).Methods(http.MethodDelete)
	mux.HandleFunc("/api/cart/clear", rh.requireUser(rh.ClearCart)).Methods(http.MethodDelete)
	mux.HandleFunc("/api/cart/checkout", rh.requireUser(rh.Checkout)).Methods(http.MethodPost)

	// orders
	both(mux, "/api/orders", rh.requireUser(rh.ListOrders), http.MethodGet)

	// wishlist
	both(mux, "/api/wishlist", rh.requireUser(rh.GetWishlist), http.MethodGet)
	mux.HandleFunc("/api/wishlist/{product_id:[0-9]+}", rh.requireUser(rh.AddToWishlist)).Methods(http.MethodPost)
	mux.HandleFunc("/api/wishlist/{product_id:[0-9]+}", rh.requireUser(rh.RemoveFromWishlist)).Methods(http.MethodDelete)

	// internal routes
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(rh.Config.Internal.APIKey))
	internal.HandleFunc("/orders/{id:[0-9]+}/confirm", rh.ConfirmOrder).Methods(http.MethodPost)

	// server rendered pages
	mux.HandleFunc("/login", rh.LoginPage).Methods(http.MethodGet)
	mux.HandleFunc("/login", rh.LoginSubmit).Methods(http.MethodPost)
	mux.HandleFunc("/products/new", rh.NewProductPage).Methods(http.MethodGet)
	mux.HandleFunc("/products", rh.CreateProductSubmit).Methods(http.MethodPost)

	// single page app, must stay last
	mux.PathPrefix("/").Handler(SPAHandler(rh.Config.Server.StaticDir))

	var h http.Handler = mux
	h = CSRFMiddleware(rh.Sessions, rh.CSRF, rh.Config.IsProduction())(h)
	h = AuthMiddleware(rh.UserApp, rh.Sessions)(h)
	h = LoggingMiddleware()(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(rh.Config.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", constant.CSRFHeader, constant.CSRFHeaderAlt}),
		handlers.AllowCredentials(),
	)(h)

	return h, nil
}

// both registers path with and without the trailing slash.
func both(r *mux.Router, path string, h http.HandlerFunc, methods ...string) {
	r.HandleFunc(path, h).Methods(methods...)
	r.HandleFunc(path+"/", h).Methods(methods...)
}

func pathID(r *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return id, nil
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

// validate runs struct tags and reports failures per field.
func validate(v interface{}) error {
	if err := validatorx.ValidateStruct(v); err != nil {
		if fields := validatorx.FieldErrors(err); fields != nil {
			return errors.SetValidationError(fields)
		}
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}
