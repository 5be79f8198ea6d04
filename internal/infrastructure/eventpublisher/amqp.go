package eventpublisher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	// ErrPublishNacked is returned when the broker rejects a message.
	ErrPublishNacked = errors.New("amqp: message nacked by broker")
	// ErrConfirmTimeout is returned when no confirmation arrives in time.
	ErrConfirmTimeout = errors.New("amqp: confirmation timed out")
)

const defaultConfirmTimeout = 5 * time.Second

// amqpChannel is the subset of *amqp.Channel the publisher relies on.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Confirm(noWait bool) error
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes to a durable topic exchange with publisher confirms.
type AMQPPublisher struct {
	mu             sync.Mutex
	ch             amqpChannel
	conn           *amqp.Connection
	exchange       string
	confirms       chan amqp.Confirmation
	confirmTimeout time.Duration
}

// DialAMQP connects to url and prepares a publisher on exchange.
func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	p, err := NewAMQPPublisher(ch, exchange, defaultConfirmTimeout)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewAMQPPublisher declares exchange and switches ch into confirm mode.
func NewAMQPPublisher(ch amqpChannel, exchange string, confirmTimeout time.Duration) (*AMQPPublisher, error) {
	if confirmTimeout <= 0 {
		confirmTimeout = defaultConfirmTimeout
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirms: %w", err)
	}

	return &AMQPPublisher{
		ch:             ch,
		exchange:       exchange,
		confirms:       ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		confirmTimeout: confirmTimeout,
	}, nil
}

// Publish sends msg with its topic as routing key and waits for the broker's confirmation.
func (p *AMQPPublisher) Publish(ctx context.Context, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(ctx, p.exchange, msg.Topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    msg.OccurredAt,
		Type:         msg.Topic,
		Headers:      amqp.Table{"key": msg.Key},
		Body:         msg.Body,
	})
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}

	timer := time.NewTimer(p.confirmTimeout)
	defer timer.Stop()

	select {
	case confirm, ok := <-p.confirms:
		if !ok {
			return errors.New("amqp: confirmation channel closed")
		}
		if !confirm.Ack {
			return ErrPublishNacked
		}
		return nil
	case <-timer.C:
		return ErrConfirmTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the channel and, when dialed by DialAMQP, the connection.
func (p *AMQPPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
