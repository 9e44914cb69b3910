// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"numdash-server/commons"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Events is the publisher used by request handlers.
var Events Publisher = NopPublisher{}

// InitPublisher connects Events to RABBITMQ_URL. Without a URL events are
// dropped.
func InitPublisher() error {
	p, err := NewPublisher(Config{})
	if err != nil {
		return err
	}
	Events = p
	return nil
}

func NewPublisher(c Config) (Publisher, error) {
	if c.AMQPURL == "" {
		c.AMQPURL = commons.GetEnv("RABBITMQ_URL")
	}
	if c.Exchange == "" {
		c.Exchange = commons.GetEnv("RABBITMQ_EXCHANGE", DefaultExchange)
	}
	if c.AMQPURL == "" {
		commons.Logger.Info("RABBITMQ_URL not set, dashboard events are disabled")
		return NopPublisher{}, nil
	}
	if _, err := url.Parse(c.AMQPURL); err != nil {
		commons.Logger.Error("Failed to parse RabbitMQ URL:", err)
		return nil, err
	}

	p := &AMQPPublisher{config: c}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	commons.Logger.Infof("Publishing dashboard events to exchange %s", c.Exchange)
	return p, nil
}

// connect must be called with mu held.
func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.config.AMQPURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.config.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}
	p.conn, p.channel = conn, ch
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil || p.channel.IsClosed() {
		commons.Logger.Warn("RabbitMQ channel closed, reconnecting")
		if err := p.connect(); err != nil {
			return err
		}
	}

	err = p.channel.PublishWithContext(ctx, p.config.Exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	commons.Logger.Debugf("Published %s event (%d bytes)", routingKey, len(body))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
