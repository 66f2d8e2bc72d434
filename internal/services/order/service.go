package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"bella-vista/internal/logger"
	"bella-vista/internal/menu"
	"bella-vista/internal/models"
	"bella-vista/internal/session"
)

var (
	// ErrEmptyOrder rejects a submission where every quantity is zero.
	ErrEmptyOrder = errors.New("order: no items selected")

	// ErrNoActiveOrder is returned when a workflow step needs a cart and
	// the session has none.
	ErrNoActiveOrder = errors.New("order: no active order for this session")
)

// repository is what the service needs from order persistence.
type repository interface {
	InsertOrderRows(ctx context.Context, rows []models.OrderRow) error
	UpdatePaymentMethod(ctx context.Context, customerID string, method models.PaymentMethod) error
	UpdateDeliveryDetails(ctx context.Context, customerID, address, phone string) error
	OrdersByCustomer(ctx context.Context, customerID string) ([]models.OrderRow, error)
}

// EventPublisher publishes order lifecycle events. A nil publisher
// disables events.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event *models.OrderEvent) error
}

// Service drives the order workflow: cart computation, persistence of
// order rows, payment method and delivery updates, confirmation and
// cancellation.
type Service struct {
	repo      repository
	catalog   *menu.Catalog
	carts     session.Store
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new order service. publisher may be nil.
func NewService(repo repository, catalog *menu.Catalog, carts session.Store, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		carts:     carts,
		publisher: publisher,
		logger:    log,
	}
}

// PlaceOrder computes the cart total from the submitted quantities,
// persists one order row per item with quantity > 0 in a single
// transaction, and stores the cart in the session. Quantities that are
// absent or not numeric count as zero. An order with no items at all is
// rejected.
func (s *Service) PlaceOrder(ctx context.Context, customerID string, form url.Values) (*models.Cart, error) {
	quantities := make(map[int]int)
	total := decimal.Zero

	for _, item := range s.catalog.List() {
		q := parseQuantity(form.Get(fmt.Sprintf("quantity_%d", item.ID)))
		quantities[item.ID] = q
		if q > 0 {
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(q))))
		}
	}

	var rows []models.OrderRow
	for _, item := range s.catalog.List() {
		if q := quantities[item.ID]; q > 0 {
			rows = append(rows, models.OrderRow{
				CustomerID:    customerID,
				ItemName:      item.Name,
				Quantity:      q,
				TotalAmount:   total,
				PaymentMethod: models.PaymentNone,
			})
		}
	}
	if len(rows) == 0 {
		return nil, ErrEmptyOrder
	}

	cart := &models.Cart{
		CustomerID:  customerID,
		Items:       quantities,
		TotalAmount: total,
		Status:      models.CartPlaced,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.InsertOrderRows(ctx, rows); err != nil {
		return nil, err
	}
	if err := s.carts.Put(ctx, customerID, cart); err != nil {
		return nil, fmt.Errorf("failed to store cart: %w", err)
	}

	s.publishEvent(ctx, models.NewOrderEvent(models.EventOrderPlaced, cart, eventItems(rows), models.PaymentNone))

	return cart, nil
}

// Cart returns the session's in-progress cart, or ErrNoActiveOrder.
func (s *Service) Cart(ctx context.Context, customerID string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrNoActiveOrder
		}
		return nil, err
	}
	return cart, nil
}

// ChoosePayment records the payment method on every persisted row of the
// session's order. A method outside card/cash is rejected without any
// state change.
func (s *Service) ChoosePayment(ctx context.Context, customerID, method string) error {
	parsed, err := models.ParsePaymentMethod(method)
	if err != nil {
		return err
	}

	cart, err := s.Cart(ctx, customerID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePaymentMethod(ctx, customerID, parsed); err != nil {
		return err
	}

	cart.Status = models.CartPaymentChosen
	cart.PaymentMethod = parsed
	if err := s.carts.Put(ctx, customerID, cart); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return nil
}

// ConfirmPayment ends the workflow for this session and clears the cart.
// It does not verify that a payment method was chosen.
func (s *Service) ConfirmPayment(ctx context.Context, customerID string) error {
	if cart, err := s.carts.Get(ctx, customerID); err == nil {
		s.publishEvent(ctx, models.NewOrderEvent(models.EventPaymentConfirmed, cart, nil, cart.PaymentMethod))
	}
	return s.carts.Delete(ctx, customerID)
}

// SetDeliveryDetails records address and phone on every persisted row of
// the session's order. It is independent of the payment state and
// succeeds even when no rows match.
func (s *Service) SetDeliveryDetails(ctx context.Context, customerID, address, phone string) error {
	return s.repo.UpdateDeliveryDetails(ctx, customerID, address, phone)
}

// CancelOrder clears the session cart. Rows already persisted stay in
// storage.
func (s *Service) CancelOrder(ctx context.Context, customerID string) error {
	if cart, err := s.carts.Get(ctx, customerID); err == nil {
		s.publishEvent(ctx, models.NewOrderEvent(models.EventOrderCancelled, cart, nil, models.PaymentNone))
	}
	return s.carts.Delete(ctx, customerID)
}

// OrdersForCustomer returns the persisted order rows of this session.
func (s *Service) OrdersForCustomer(ctx context.Context, customerID string) ([]models.OrderRow, error) {
	return s.repo.OrdersByCustomer(ctx, customerID)
}

// publishEvent publishes best-effort: a broker outage must not fail the
// customer-facing operation.
func (s *Service) publishEvent(ctx context.Context, event *models.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Error("event_publish_failed", "", fmt.Sprintf("Failed to publish %s event", event.Event), err, map[string]interface{}{
			"customer_id": event.CustomerID,
		})
	}
}

func parseQuantity(raw string) int {
	q, err := strconv.Atoi(raw)
	if err != nil || q < 0 {
		return 0
	}
	return q
}

func eventItems(rows []models.OrderRow) []models.OrderEventItem {
	items := make([]models.OrderEventItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.OrderEventItem{Name: row.ItemName, Quantity: row.Quantity})
	}
	return items
}
