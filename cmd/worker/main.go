package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/muhammadheryan/storefront/cmd/config"
	"github.com/muhammadheryan/storefront/thirdparty/rabbitmq"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// The worker confirms orders placed at checkout by calling back into the
// API's internal endpoint.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	confirmer := rabbitmq.NewOrderConfirmer(cfg.Internal.APIURL, cfg.Internal.APIKey)

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, confirmer)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}
	logger.Info("checkout worker running", zap.String("api", cfg.Internal.APIURL))

	<-ctx.Done()
	logger.Info("checkout worker stopping")
}
