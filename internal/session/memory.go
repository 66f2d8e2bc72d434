package session

import (
	"context"
	"sync"
	"time"

	"bella-vista/internal/models"
)

type memoryEntry struct {
	cart      *models.Cart
	expiresAt time.Time
}

// MemoryStore keeps carts in process memory. Suitable for a single
// instance; multi-instance deployments use the redis store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory cart store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*models.Cart, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return cloneCart(entry.cart), nil
}

func (s *MemoryStore) Put(ctx context.Context, token string, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{cart: cloneCart(cart), expiresAt: time.Now().Add(s.ttl)}
	return nil
}

// cloneCart copies the cart struct and its Items map so callers never
// alias the stored value. Concurrent requests for one session each work
// on their own copy, the same isolation the redis store gets from its
// JSON round-trip.
func cloneCart(cart *models.Cart) *models.Cart {
	if cart == nil {
		return nil
	}
	clone := *cart
	if cart.Items != nil {
		clone.Items = make(map[int]int, len(cart.Items))
		for id, q := range cart.Items {
			clone.Items[id] = q
		}
	}
	return &clone
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

// StartSweeper periodically drops expired entries until ctx is done.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *MemoryStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, token)
		}
	}
}
