// Package events publishes transaction changes to a RabbitMQ exchange.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/rabbitmq/amqp091-go"

	"expensetracker/internal/controller"
	"expensetracker/internal/core"
	"expensetracker/internal/log"
)

// Config holds the broker settings.
type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	// Attempts bounds dialing and each publish, including the first try.
	Attempts uint
	// Timeout bounds a single publish attempt.
	Timeout time.Duration
}

// HeaderTransactionID carries the transaction ID on every published message.
const HeaderTransactionID = "transaction_id"

// channel is the part of *amqp091.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher implements controller.EventPublisher over AMQP.
type Publisher struct {
	conn    *amqp091.Connection
	channel channel
	cfg     Config
	logger  *log.Logger

	// ctx bounds every publish; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
}

var _ controller.EventPublisher = (*Publisher)(nil)

// Dial connects to the broker and declares the exchange, retrying the
// connection with exponential backoff. Publishing stops retrying once ctx is
// done or the publisher is closed.
func Dial(ctx context.Context, cfg Config, logger *log.Logger) (*Publisher, error) {
	cfg = withDefaults(cfg)
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentEvents)

	var conn *amqp091.Connection
	err := retry.Do(
		func() error {
			c, err := amqp091.Dial(cfg.URL)
			if err != nil {
				return err
			}
			conn = c
			return nil
		},
		retry.Attempts(cfg.Attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("AMQP dial failed, retrying", "attempt", n+1, log.FieldError, err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := newPublisher(ctx, ch, cfg, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ctx context.Context, ch channel, cfg Config, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Discard()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Publisher{
		channel: ch,
		cfg:     withDefaults(cfg),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func withDefaults(cfg Config) Config {
	if cfg.Attempts == 0 {
		cfg.Attempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return cfg
}

func (p *Publisher) TransactionAdded(t *core.Transaction) error {
	return p.Publish(p.ctx, NewTransactionEvent(TransactionAdded, t))
}

func (p *Publisher) TransactionRemoved(t *core.Transaction) error {
	return p.Publish(p.ctx, NewTransactionEvent(TransactionRemoved, t))
}

// RoutingKey returns the key an event of type typ is published with.
func (p *Publisher) RoutingKey(typ EventType) string {
	if p.cfg.RoutingKey == "" {
		return string(typ)
	}
	return p.cfg.RoutingKey + "." + string(typ)
}

// Publish sends e, retrying up to the configured number of attempts or until
// ctx is done.
func (p *Publisher) Publish(ctx context.Context, e *TransactionEvent) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	key := p.RoutingKey(e.Type)

	err = retry.Do(
		func() error {
			ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
			defer cancel()
			return p.channel.PublishWithContext(
				ctx,
				p.cfg.Exchange, // exchange
				key,            // routing key
				false,          // mandatory
				false,          // immediate
				amqp091.Publishing{
					ContentType:  "application/json",
					DeliveryMode: amqp091.Persistent,
					Timestamp:    e.OccurredAt,
					MessageId:    e.ID,
					Type:         string(e.Type),
					Headers:      amqp091.Table{HeaderTransactionID: e.TransactionID},
					Body:         body,
				},
			)
		},
		retry.Attempts(p.cfg.Attempts),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}

	p.logger.Debug("Published transaction event",
		log.FieldEvent, e.Type,
		"event_id", e.ID,
		log.FieldTransactionID, e.TransactionID,
		"exchange", p.cfg.Exchange,
		"routing_key", key)
	return nil
}

func (p *Publisher) Close() error {
	p.cancel()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
