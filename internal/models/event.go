package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle events published to the message broker.
const (
	EventOrderPlaced      = "placed"
	EventPaymentConfirmed = "payment_confirmed"
	EventOrderCancelled   = "cancelled"
)

// OrderEventItem is one line of an order as carried in an event.
type OrderEventItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderEvent is the message published when an order changes state.
type OrderEvent struct {
	Event         string           `json:"event"`
	CustomerID    string           `json:"customer_id"`
	Items         []OrderEventItem `json:"items,omitempty"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	PaymentMethod PaymentMethod    `json:"payment_method,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// NewOrderEvent builds an event for the given cart state.
func NewOrderEvent(event string, cart *Cart, items []OrderEventItem, method PaymentMethod) *OrderEvent {
	return &OrderEvent{
		Event:         event,
		CustomerID:    cart.CustomerID,
		Items:         items,
		TotalAmount:   cart.TotalAmount,
		PaymentMethod: method,
		Timestamp:     time.Now().UTC(),
	}
}

// EventRoutingKey generates the routing key for an order event.
func EventRoutingKey(event string) string {
	return fmt.Sprintf("order.%s", event)
}
