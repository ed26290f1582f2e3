package booking

import (
	"context"
	"fmt"
	"time"

	"selvatours/internal/shared/constants"
	"selvatours/pkg/cache"
)

// ErrConfirmationNotFound is returned when a confirmation id has no
// pending request behind it (expired TTL, already sent, or never issued).
var ErrConfirmationNotFound = fmt.Errorf("pending confirmation not found or expired")

// PendingStore holds validated requests between submission and the
// explicit confirm step.
type PendingStore interface {
	Put(ctx context.Context, pending *PendingRequest) error
	Get(ctx context.Context, confirmationID string) (*PendingRequest, error)
	Delete(ctx context.Context, confirmationID string) error
}

// redisPendingStore keeps pending requests in Redis under a TTL, the same
// hold-with-expiry pattern used for any short-lived reservation state.
type redisPendingStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewPendingStore creates a Redis-backed pending store. A non-positive
// ttl falls back to the default confirmation window.
func NewPendingStore(cacheService cache.Service, ttl time.Duration) PendingStore {
	if ttl <= 0 {
		ttl = constants.TTL_BOOKING_PENDING
	}
	return &redisPendingStore{
		cache: cacheService,
		ttl:   ttl,
	}
}

func (s *redisPendingStore) Put(ctx context.Context, pending *PendingRequest) error {
	key := constants.BookingPendingKey(pending.ConfirmationID)
	if err := s.cache.Set(ctx, key, pending, s.ttl); err != nil {
		return fmt.Errorf("failed to store pending request: %w", err)
	}
	return nil
}

func (s *redisPendingStore) Get(ctx context.Context, confirmationID string) (*PendingRequest, error) {
	key := constants.BookingPendingKey(confirmationID)

	var pending PendingRequest
	if err := s.cache.Get(ctx, key, &pending); err != nil {
		if err == cache.ErrCacheMiss {
			return nil, ErrConfirmationNotFound
		}
		return nil, fmt.Errorf("failed to load pending request: %w", err)
	}

	return &pending, nil
}

func (s *redisPendingStore) Delete(ctx context.Context, confirmationID string) error {
	key := constants.BookingPendingKey(confirmationID)
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete pending request: %w", err)
	}
	return nil
}
