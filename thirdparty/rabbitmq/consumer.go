package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/muhammadheryan/storefront/model"
	"github.com/muhammadheryan/storefront/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Consumer struct {
	conn      *amqp091.Connection
	channel   *amqp091.Channel
	confirmer *OrderConfirmer
}

// OrderConfirmer calls the internal confirm endpoint of the API.
type OrderConfirmer struct {
	APIURL string
	APIKey string
	HTTP   *http.Client
}

func NewOrderConfirmer(apiURL, apiKey string) *OrderConfirmer {
	return &OrderConfirmer{
		APIURL: apiURL,
		APIKey: apiKey,
		HTTP:   &http.Client{Timeout: 10 * time.Second},
	}
}

func NewConsumer(host string, port int, user, password string, confirmer *OrderConfirmer) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Consumer{conn: conn, channel: channel, confirmer: confirmer}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	// Set QoS to 1 - process one message at a time
	err := c.channel.Qos(1, 0, false)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		CheckoutQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("[Consumer] delivery channel closed")
					return
				}
				switch c.confirmer.Handle(ctx, msg.Body) {
				case Ack:
					msg.Ack(false)
				case Requeue:
					msg.Nack(false, true)
				}
			}
		}
	}()

	return nil
}

type Outcome int

const (
	Ack Outcome = iota
	Requeue
)

// Handle processes one checkout message body. Unreadable messages are
// dropped; transport failures and 5xx answers are retried.
func (o *OrderConfirmer) Handle(ctx context.Context, body []byte) Outcome {
	var event model.CheckoutEvent
	if err := json.Unmarshal(body, &event); err != nil || event.OrderID == 0 {
		logger.Error("[Consumer] dropping unreadable message", zap.ByteString("body", body))
		return Ack
	}

	if err := o.Confirm(ctx, event.OrderID); err != nil {
		logger.Error("[Consumer] confirm order", zap.Uint64("order_id", event.OrderID), zap.String("error", err.Error()))
		return Requeue
	}

	logger.Info("[Consumer] order confirmed", zap.Uint64("order_id", event.OrderID))
	return Ack
}

func (o *OrderConfirmer) Confirm(ctx context.Context, orderID uint64) error {
	url := fmt.Sprintf("%s/internal/v1/orders/%d/confirm", o.APIURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.APIKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Service", "checkout-consumer")

	resp, err := o.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 500 {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode >= 400 {
		// already confirmed or gone; retrying will not help
		logger.Warn("[Consumer] confirm rejected", zap.Uint64("order_id", orderID), zap.Int("status", resp.StatusCode))
	}

	return nil
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
