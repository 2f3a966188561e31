// Package events publishes purchase notifications to an MQTT broker.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseEvent describes one completed checkout.
type PurchaseEvent struct {
	UserID        uint            `json:"user_id"`
	BookIDs       []uint          `json:"book_ids"`
	Titles        []string        `json:"titles"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	PurchasedAt   time.Time       `json:"purchased_at"`
}

// Publisher announces recorded purchases.
type Publisher interface {
	PublishPurchase(ctx context.Context, ev PurchaseEvent) error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

// PublishPurchase does nothing.
func (Nop) PublishPurchase(context.Context, PurchaseEvent) error { return nil }

// ErrPublishTimeout is returned when the broker does not acknowledge in time.
var ErrPublishTimeout = errors.New("mqtt publish timed out")

// MQTTPublisher sends events as JSON with QoS 1.
type MQTTPublisher struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
}

// NewMQTTPublisher connects to broker (e.g. tcp://localhost:1883).
func NewMQTTPublisher(broker, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("bibliotech-" + uuid.NewString()[:8]).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, err)
	}
	return &MQTTPublisher{client: client, topic: topic, timeout: 5 * time.Second}, nil
}

// PublishPurchase sends ev and waits for the broker acknowledgement,
// bounded by the publisher timeout and ctx.
func (p *MQTTPublisher) PublishPurchase(ctx context.Context, ev PurchaseEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode purchase event: %w", err)
	}
	token := p.client.Publish(p.topic, 1, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-time.After(p.timeout):
		return ErrPublishTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects, giving in-flight messages a short grace period.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
