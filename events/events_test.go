package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopAcceptsEverything(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.PublishPurchase(context.Background(), PurchaseEvent{UserID: 1}))
}

func TestPurchaseEventWireFormat(t *testing.T) {
	ev := PurchaseEvent{
		UserID:        4,
		BookIDs:       []uint{1, 2},
		Titles:        []string{"Python Essentials", "The Definitive UX Guide"},
		Total:         decimal.RequireFromString("64.80"),
		PaymentMethod: "pix",
		PurchasedAt:   time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC),
	}
	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "64.8", raw["total"]) // decimals travel as strings
	assert.Equal(t, "2026-10-15T09:30:00Z", raw["purchased_at"])
	assert.Len(t, raw["book_ids"], 2)
}

func TestNewMQTTPublisherFailsWithoutBroker(t *testing.T) {
	_, err := NewMQTTPublisher("tcp://127.0.0.1:1", "bibliotech/purchases")
	assert.Error(t, err)
}
