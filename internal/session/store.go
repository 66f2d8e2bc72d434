package session

import (
	"context"
	"errors"

	"bella-vista/internal/models"
)

// ErrNotFound is returned when no cart exists for a session token.
var ErrNotFound = errors.New("session: cart not found")

// Store holds the per-visitor cart between requests. The cart is created
// at order submission and deleted at payment confirmation or
// cancellation; implementations expire entries after a TTL.
type Store interface {
	Get(ctx context.Context, token string) (*models.Cart, error)
	Put(ctx context.Context, token string, cart *models.Cart) error
	Delete(ctx context.Context, token string) error
}
