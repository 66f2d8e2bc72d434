package order

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bella-vista/internal/logger"
	"bella-vista/internal/menu"
	"bella-vista/internal/models"
	"bella-vista/internal/session"
)

// fakeRepository keeps order rows in memory for service tests.
type fakeRepository struct {
	rows       []models.OrderRow
	insertErr  error
	lastMethod models.PaymentMethod
}

func (f *fakeRepository) InsertOrderRows(ctx context.Context, rows []models.OrderRow) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeRepository) UpdatePaymentMethod(ctx context.Context, customerID string, method models.PaymentMethod) error {
	f.lastMethod = method
	for i := range f.rows {
		if f.rows[i].CustomerID == customerID {
			f.rows[i].PaymentMethod = method
		}
	}
	return nil
}

func (f *fakeRepository) UpdateDeliveryDetails(ctx context.Context, customerID, address, phone string) error {
	for i := range f.rows {
		if f.rows[i].CustomerID == customerID {
			f.rows[i].Address = address
			f.rows[i].Phone = phone
		}
	}
	return nil
}

func (f *fakeRepository) OrdersByCustomer(ctx context.Context, customerID string) ([]models.OrderRow, error) {
	var out []models.OrderRow
	for _, row := range f.rows {
		if row.CustomerID == customerID {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	events []*models.OrderEvent
}

func (f *fakePublisher) PublishOrderEvent(ctx context.Context, event *models.OrderEvent) error {
	f.events = append(f.events, event)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeRepository, *fakePublisher) {
	t.Helper()
	repo := &fakeRepository{}
	pub := &fakePublisher{}
	svc := NewService(repo, menu.Default(), session.NewMemoryStore(time.Minute), pub, logger.New("test"))
	return svc, repo, pub
}

func form(pairs map[string]string) url.Values {
	v := url.Values{}
	for k, val := range pairs {
		v.Set(k, val)
	}
	return v
}

func TestPlaceOrderComputesTotalAndRows(t *testing.T) {
	svc, repo, pub := newTestService(t)
	ctx := context.Background()

	// 2 pizzas at 10 and 1 salad at 8; pasta left at zero
	cart, err := svc.PlaceOrder(ctx, "4821", form(map[string]string{
		"quantity_1": "2",
		"quantity_2": "0",
		"quantity_3": "1",
	}))
	require.NoError(t, err)
	require.True(t, cart.TotalAmount.Equal(decimal.NewFromInt(28)), "total = %s", cart.TotalAmount)
	require.Equal(t, models.CartPlaced, cart.Status)

	require.Len(t, repo.rows, 2)
	require.Equal(t, "Pizza", repo.rows[0].ItemName)
	require.Equal(t, 2, repo.rows[0].Quantity)
	require.Equal(t, "Salad", repo.rows[1].ItemName)
	require.Equal(t, 1, repo.rows[1].Quantity)
	for _, row := range repo.rows {
		require.Equal(t, "4821", row.CustomerID)
		require.True(t, row.TotalAmount.Equal(decimal.NewFromInt(28)))
		require.Equal(t, models.PaymentNone, row.PaymentMethod)
	}

	require.Len(t, pub.events, 1)
	require.Equal(t, models.EventOrderPlaced, pub.events[0].Event)
	require.Len(t, pub.events[0].Items, 2)
}

func TestPlaceOrderInvalidQuantitiesCountAsZero(t *testing.T) {
	svc, repo, _ := newTestService(t)

	cart, err := svc.PlaceOrder(context.Background(), "c1", form(map[string]string{
		"quantity_1": "abc",
		"quantity_2": "-3",
		"quantity_3": "1",
	}))
	require.NoError(t, err)
	require.True(t, cart.TotalAmount.Equal(decimal.NewFromInt(8)))
	require.Len(t, repo.rows, 1)
	require.Equal(t, "Salad", repo.rows[0].ItemName)
}

func TestPlaceOrderRejectsEmptyOrder(t *testing.T) {
	svc, repo, _ := newTestService(t)

	_, err := svc.PlaceOrder(context.Background(), "c1", form(map[string]string{
		"quantity_1": "0",
	}))
	require.ErrorIs(t, err, ErrEmptyOrder)
	require.Empty(t, repo.rows)

	// Nothing selected means no cart either
	_, err = svc.Cart(context.Background(), "c1")
	require.ErrorIs(t, err, ErrNoActiveOrder)
}

func TestChoosePayment(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "c1", form(map[string]string{"quantity_1": "2", "quantity_3": "1"}))
	require.NoError(t, err)

	// Invalid method leaves every row unchanged
	err = svc.ChoosePayment(ctx, "c1", "bitcoin")
	require.ErrorIs(t, err, models.ErrInvalidPaymentMethod)
	for _, row := range repo.rows {
		require.Equal(t, models.PaymentNone, row.PaymentMethod)
	}

	// Valid method updates all rows and advances the cart
	require.NoError(t, svc.ChoosePayment(ctx, "c1", "cash"))
	for _, row := range repo.rows {
		require.Equal(t, models.PaymentCash, row.PaymentMethod)
	}

	cart, err := svc.Cart(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, models.CartPaymentChosen, cart.Status)
	require.Equal(t, models.PaymentCash, cart.PaymentMethod)
}

func TestChoosePaymentWithoutOrder(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.ChoosePayment(context.Background(), "nobody", "card")
	require.ErrorIs(t, err, ErrNoActiveOrder)
}

func TestConfirmPaymentClearsCart(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "c1", form(map[string]string{"quantity_2": "1"}))
	require.NoError(t, err)
	require.NoError(t, svc.ChoosePayment(ctx, "c1", "card"))

	require.NoError(t, svc.ConfirmPayment(ctx, "c1"))

	_, err = svc.Cart(ctx, "c1")
	require.ErrorIs(t, err, ErrNoActiveOrder)

	confirmed := pub.events[len(pub.events)-1]
	require.Equal(t, models.EventPaymentConfirmed, confirmed.Event)
	require.Equal(t, models.PaymentCard, confirmed.PaymentMethod)

	// Confirming again is harmless
	require.NoError(t, svc.ConfirmPayment(ctx, "c1"))
}

func TestCancelOrderKeepsPersistedRows(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "c1", form(map[string]string{"quantity_1": "1"}))
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(ctx, "c1"))

	_, err = svc.Cart(ctx, "c1")
	require.ErrorIs(t, err, ErrNoActiveOrder)

	// Rows already written stay behind as orphans
	rows, err := svc.OrdersForCustomer(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.Equal(t, models.EventOrderCancelled, pub.events[len(pub.events)-1].Event)
}

func TestSetDeliveryDetails(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	// No matching rows is still a success
	require.NoError(t, svc.SetDeliveryDetails(ctx, "nobody", "1 Main St", "555-0000"))

	_, err := svc.PlaceOrder(ctx, "c1", form(map[string]string{"quantity_1": "1", "quantity_2": "1"}))
	require.NoError(t, err)

	require.NoError(t, svc.SetDeliveryDetails(ctx, "c1", "42 Elm St", "555-1234"))
	for _, row := range repo.rows {
		require.Equal(t, "42 Elm St", row.Address)
		require.Equal(t, "555-1234", row.Phone)
	}
}
