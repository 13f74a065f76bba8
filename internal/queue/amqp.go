package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPQueue publishes call requests to RabbitMQ.
type AMQPQueue struct {
	conn   *amqp.Connection
	host   string
	logger *slog.Logger

	mu sync.Mutex // guards ch; channels are not safe for concurrent publishing
	ch *amqp.Channel
}

// NewAMQPQueue dials the broker and declares the exchange, the request
// queue and its dead-letter queue.
func NewAMQPQueue(dsn string, logger *slog.Logger) (*AMQPQueue, error) {
	conn, err := amqp.Dial(dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to amqp broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare call topology: %w", err)
	}

	host := "amqp"
	if u, err := url.Parse(dsn); err == nil {
		host = u.Host
	}

	logger.Info("connected to call queue", "host", host, "exchange", ExchangeName)
	return &AMQPQueue{conn: conn, ch: ch, host: host, logger: logger}, nil
}

func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(DLQName, RoutingKey, DLXName, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": RoutingKey,
	}
	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, args); err != nil {
		return err
	}
	return ch.QueueBind(QueueName, RoutingKey, ExchangeName, false, nil)
}

func (q *AMQPQueue) Name() string {
	return fmt.Sprintf("amqp (%s)", q.host)
}

// Publish sends req as a persistent JSON message.
func (q *AMQPQueue) Publish(ctx context.Context, req CallRequest) error {
	body, err := Encode(req)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	err = q.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    req.LeadID,
			Timestamp:    req.RequestedAt,
		},
	)
	if err != nil {
		q.logger.Error("failed to publish call request", "lead_id", req.LeadID, "error", err)
		return fmt.Errorf("publish call request: %w", err)
	}

	q.logger.Debug("call request published", "lead_id", req.LeadID)
	return nil
}

func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.ch.Close(); err != nil && err != amqp.ErrClosed {
		return err
	}
	return q.conn.Close()
}

var _ CallQueue = (*AMQPQueue)(nil)

// Encode returns the wire form of req.
func Encode(req CallRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode call request: %w", err)
	}
	return body, nil
}
