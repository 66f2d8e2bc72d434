package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bella-vista/internal/models"
)

func testCart(customerID string) *models.Cart {
	return &models.Cart{
		CustomerID:  customerID,
		Items:       map[int]int{1: 2, 3: 1},
		TotalAmount: decimal.NewFromInt(28),
		Status:      models.CartPlaced,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestMemoryStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	cart := testCart("cust-1")
	require.NoError(t, store.Put(ctx, "tok-1", cart))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, "cust-1", got.CustomerID)
	require.True(t, got.TotalAmount.Equal(decimal.NewFromInt(28)))

	require.NoError(t, store.Delete(ctx, "tok-1"))
	_, err = store.Get(ctx, "tok-1")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent entry is not an error
	require.NoError(t, store.Delete(ctx, "tok-1"))
}

func TestMemoryStoreNeverAliasesStoredCart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	original := testCart("cust-1")
	require.NoError(t, store.Put(ctx, "tok-1", original))

	// Mutating the cart we handed to Put must not reach the store
	original.Status = models.CartPaymentChosen
	original.Items[1] = 99

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, models.CartPlaced, got.Status)
	require.Equal(t, 2, got.Items[1])

	// Mutating one Get result must not leak into the next
	got.Status = models.CartPaymentChosen
	got.Items[3] = 42

	again, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, models.CartPlaced, again.Status)
	require.Equal(t, 1, again.Items[3])
}

func TestMemoryStoreConcurrentSessionAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	require.NoError(t, store.Put(ctx, "tok-1", testCart("cust-1")))

	// Two requests for the same session, one advancing the cart and one
	// reading it. Each works on its own copy, so this stays clean under
	// the race detector.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cart, err := store.Get(ctx, "tok-1")
				if err != nil {
					continue
				}
				cart.Status = models.CartPaymentChosen
				_ = store.Put(ctx, "tok-1", cart)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cart, err := store.Get(ctx, "tok-1")
				if err != nil {
					continue
				}
				_ = cart.Status
				_ = cart.Items[1]
			}
		}()
	}
	wg.Wait()
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)

	require.NoError(t, store.Put(ctx, "tok-1", testCart("cust-1")))
	time.Sleep(20 * time.Millisecond)

	_, err := store.Get(ctx, "tok-1")
	require.ErrorIs(t, err, ErrNotFound)

	store.sweep()
	store.mu.RLock()
	defer store.mu.RUnlock()
	require.Empty(t, store.entries)
}
