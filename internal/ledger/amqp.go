package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cinema-ticketing/internal/data/entity"

	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSink publishes every entry as persistent JSON to a durable queue
// on the default exchange.
type AMQPSink struct {
	mu      sync.Mutex
	queue   string
	timeout time.Duration
	pub     publisher
	conn    *amqp.Connection
	ch      *amqp.Channel
}

func DialAMQPSink(url, queue string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	sink := newAMQPSink(ch, queue)
	sink.conn = conn
	sink.ch = ch
	return sink, nil
}

func newAMQPSink(pub publisher, queue string) *AMQPSink {
	return &AMQPSink{
		queue:   queue,
		timeout: 3 * time.Second,
		pub:     pub,
	}
}

func (s *AMQPSink) Name() string { return "rabbitmq" }

func (s *AMQPSink) Write(ctx context.Context, entry *entity.ActivityEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// amqp channels must not be shared between concurrent publishers.
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pub.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    entry.CreatedAt.UTC(),
		Type:         string(entry.EventType),
		Body:         body,
	})
}

func (s *AMQPSink) Close() error {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
