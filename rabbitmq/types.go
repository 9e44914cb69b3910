// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys of dashboard events.
const (
	KeySMSSent         = "sms.sent"
	KeySMSPartial      = "sms.partial"
	KeySMSPending      = "sms.pending"
	KeyNumberPurchased = "number.purchased"
)

const DefaultExchange = "dashboard.events"

type Config struct {
	AMQPURL  string
	Exchange string
}

// Publisher sends events to the dashboard exchange.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// AMQPPublisher publishes persistent JSON messages to a topic exchange.
type AMQPPublisher struct {
	config Config

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }
