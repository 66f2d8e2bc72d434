package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer chose to pay. The empty value means
// no method has been recorded yet.
type PaymentMethod string

const (
	PaymentNone PaymentMethod = ""
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// ErrInvalidPaymentMethod rejects any payment method outside card/cash.
var ErrInvalidPaymentMethod = errors.New("payment_method must be one of: card, cash")

// ParsePaymentMethod validates a submitted payment method. Anything
// outside card/cash is rejected explicitly.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCard, PaymentCash:
		return PaymentMethod(s), nil
	default:
		return PaymentNone, ErrInvalidPaymentMethod
	}
}

// CartStatus tracks where a session's order is in the workflow.
type CartStatus string

const (
	CartPlaced        CartStatus = "placed"
	CartPaymentChosen CartStatus = "payment_chosen"
)

// OrderRow is one persisted record per menu item chosen, not one record
// per whole order. All rows of one cart share the customer id and the
// whole-cart total, and later updates key on the customer id.
type OrderRow struct {
	CustomerID    string          `json:"customer_id"`
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

// Cart is the in-progress, session-scoped order before payment is
// confirmed. It is created at order submission and destroyed when the
// payment is confirmed or the order cancelled.
type Cart struct {
	CustomerID    string          `json:"customer_id"`
	Items         map[int]int     `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        CartStatus      `json:"status"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
