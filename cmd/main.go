package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/muhammadheryan/storefront/application/cart"
	orderapp "github.com/muhammadheryan/storefront/application/order"
	productapp "github.com/muhammadheryan/storefront/application/product"
	reviewapp "github.com/muhammadheryan/storefront/application/review"
	userapp "github.com/muhammadheryan/storefront/application/user"
	wishlistapp "github.com/muhammadheryan/storefront/application/wishlist"
	"github.com/muhammadheryan/storefront/cmd/config"
	"github.com/muhammadheryan/storefront/cmd/database"
	redisclient "github.com/muhammadheryan/storefront/cmd/redis"
	_ "github.com/muhammadheryan/storefront/docs"
	cartRepo "github.com/muhammadheryan/storefront/repository/cart"
	orderRepo "github.com/muhammadheryan/storefront/repository/order"
	productRepo "github.com/muhammadheryan/storefront/repository/product"
	redisRepo "github.com/muhammadheryan/storefront/repository/redis"
	reviewRepo "github.com/muhammadheryan/storefront/repository/review"
	txRepo "github.com/muhammadheryan/storefront/repository/tx"
	userRepo "github.com/muhammadheryan/storefront/repository/user"
	wishlistRepo "github.com/muhammadheryan/storefront/repository/wishlist"
	"github.com/muhammadheryan/storefront/thirdparty/objectstore"
	"github.com/muhammadheryan/storefront/thirdparty/rabbitmq"
	"github.com/muhammadheryan/storefront/transport"
	"github.com/muhammadheryan/storefront/utils/csrf"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// @title STOREFRONT API
// @version 1.0
// @description Storefront catalog, cart, wishlist and review API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey InternalKey
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	applied, err := database.Migrate(cfg)
	if err != nil {
		logger.Fatal("err migrate db", zap.Error(err))
	}
	logger.Info("database schema ready", zap.Bool("applied", applied))

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	ctx := context.Background()

	// cover uploads are optional
	var covers productapp.CoverStore
	store, err := objectstore.New(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("err connect object storage", zap.Error(err))
	}
	if store != nil {
		covers = store
	} else {
		logger.Warn("object storage not configured, cover uploads disabled")
	}

	// checkout events are best effort
	var publisher cartapp.EventPublisher
	pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("rabbitmq unavailable, checkout events disabled", zap.Error(err))
	} else {
		publisher = pub
		defer pub.Close()
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	CartRepo := cartRepo.NewCartRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	WishlistRepo := wishlistRepo.NewWishlistRepository(db)
	ReviewRepo := reviewRepo.NewReviewRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	handler, err := transport.NewTransport(&transport.RestHandler{
		Config:      cfg,
		UserApp:     userapp.NewUserApp(cfg, UserRepo, RedisRepo),
		ProductApp:  productapp.NewProductApp(ProductRepo, covers),
		CartApp:     cartapp.NewCartApp(TxRepo, CartRepo, ProductRepo, OrderRepo, publisher),
		OrderApp:    orderapp.NewOrderApp(TxRepo, OrderRepo),
		WishlistApp: wishlistapp.NewWishlistApp(WishlistRepo, ProductRepo, RedisRepo),
		ReviewApp:   reviewapp.NewReviewApp(ReviewRepo, ProductRepo),
		Sessions:    transport.NewSessionStore(cfg),
		CSRF:        csrf.NewManager(cfg.Auth.CSRFSecret, cfg.Auth.CSRFTimeLimit),
	})
	if err != nil {
		logger.Fatal("err build transport", zap.Error(err))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("err shutdown server", zap.Error(err))
	}
}
