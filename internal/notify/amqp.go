package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchange = "notifications"

	keyConfirmation    = "order.confirmation"
	keyRestaurantAlert = "order.alert"
)

// AMQPNotifier publishes summaries to the notifications exchange; an
// external mailer consumes them and does the actual email formatting and
// delivery.
type AMQPNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPNotifier(url string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s exchange: %w", exchange, err)
	}
	return &AMQPNotifier{conn: conn, ch: ch}, nil
}

func (n *AMQPNotifier) SendOrderConfirmation(ctx context.Context, s Summary) error {
	return n.publish(ctx, keyConfirmation, s)
}

func (n *AMQPNotifier) SendRestaurantAlert(ctx context.Context, s Summary) error {
	return n.publish(ctx, keyRestaurantAlert, s)
}

func (n *AMQPNotifier) publish(ctx context.Context, key string, s Summary) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	err = n.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if err := n.ch.Close(); err != nil {
		n.conn.Close()
		return fmt.Errorf("close amqp channel: %w", err)
	}
	if err := n.conn.Close(); err != nil {
		return fmt.Errorf("close amqp connection: %w", err)
	}
	return nil
}
