package booking

import "time"

// AvailableTimesResponse lists the selectable time slots for a selection.
type AvailableTimesResponse struct {
	BookingType BookingType `json:"booking_type"`
	Tour        string      `json:"tour"`
	Times       []string    `json:"times"`
}

// PendingConfirmationResponse echoes the validated request back to the
// form so the user can review it before the final send.
type PendingConfirmationResponse struct {
	ConfirmationID string       `json:"confirmation_id"`
	Quote          Quote        `json:"quote"`
	Payload        RelayPayload `json:"payload"`
	ExpiresAt      time.Time    `json:"expires_at"`
}
