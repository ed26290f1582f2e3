package constants

import (
	"fmt"
	"time"
)

// Redis Key Configuration
// This file centralizes all Redis keys and TTL values for the Selva Tours API.
// Pattern: selvatours:{module}:{operation}:{identifier}

// ================== KEY PREFIXES ==================

const (
	CACHE_PREFIX = "selvatours"
)

// ================== BOOKING MODULE ==================

// Pending confirmation holds. A validated booking request waits under this
// key until the user confirms or the TTL expires.
const (
	KEY_BOOKING_PENDING = CACHE_PREFIX + ":booking:pending:" // + confirmation-id
)

const (
	// TTL_BOOKING_PENDING bounds how long a validated request may sit
	// unconfirmed. Overridable via BOOKING_CONFIRMATION_TTL.
	TTL_BOOKING_PENDING = 15 * time.Minute
)

// ================== KEY BUILDERS ==================

// BookingPendingKey builds the Redis key for a pending booking confirmation
func BookingPendingKey(confirmationID string) string {
	return fmt.Sprintf("%s%s", KEY_BOOKING_PENDING, confirmationID)
}
