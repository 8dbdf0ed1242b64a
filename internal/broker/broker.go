// Package broker publishes domain events (order status changes, reviewed
// party requests, new restaurant events) to a RabbitMQ topic exchange.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"delivery-admin/internal/config"
	"delivery-admin/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

var log = logger.New("broker")

const (
	OrderStatusChanged = "order.status_changed"
	EventCreated       = "event.created"
	PartyRequestPrefix = "party_request."
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// AMQP dials on first use and redials once the connection is lost.
type AMQP struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAMQP(url, exchange string) *AMQP {
	return &AMQP{url: url, exchange: exchange}
}

func (p *AMQP) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("dial amqp: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		p.exchange,
		"topic", // type
		true,    // durable
		false,   // auto-deleted
		false,   // internal
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}

	p.channel = ch
	return ch, nil
}

func (p *AMQP) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.ensureChannel()
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		})
}

func (p *AMQP) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

// Nop drops every message; used when AMQP_URL is empty.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }

var (
	mu        sync.RWMutex
	publisher Publisher = Nop{}
)

func Init(cfg *config.Config) {
	if cfg.AMQPURL == "" {
		log.Info("AMQP_URL not set, domain events are not published")
		SetDefault(Nop{})
		return
	}
	SetDefault(NewAMQP(cfg.AMQPURL, cfg.EventsExchange))
	log.Infof("publishing domain events to exchange %s", cfg.EventsExchange)
}

func Default() Publisher {
	mu.RLock()
	defer mu.RUnlock()
	return publisher
}

// SetDefault swaps the package publisher and returns the previous one.
func SetDefault(p Publisher) Publisher {
	mu.Lock()
	defer mu.Unlock()
	prev := publisher
	publisher = p
	return prev
}

// Notify publishes through the default publisher. Failures are logged only:
// the change that triggered the event is already committed.
func Notify(ctx context.Context, routingKey string, payload any) {
	if err := Default().Publish(ctx, routingKey, payload); err != nil {
		log.Errorf("publish %s: %v", routingKey, err)
	}
}
