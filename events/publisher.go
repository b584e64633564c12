// Package events announces relayed orders to interested listeners.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/JasonLinn/bnb-breakfast/models"
)

// SubjectOrderNotified carries models.OrderNotified payloads
const SubjectOrderNotified = "orders.notified"

// Publisher sends raw messages to a topic
type Publisher interface {
	Publish(ctx context.Context, topic string, msg []byte) error
	Close() error
}

// NATSPublisher publishes on a core NATS connection, without delivery guarantees
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to url
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("breakfast-order-endpoint"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.conn.Publish(topic, msg)
}

func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// NopPublisher drops every message; used when NATS_URL is unset
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte) error { return nil }
func (NopPublisher) Close() error                                  { return nil }

// PublishOrderNotified encodes and publishes an OrderNotified event
func PublishOrderNotified(ctx context.Context, p Publisher, ev models.OrderNotified) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return p.Publish(ctx, SubjectOrderNotified, data)
}
