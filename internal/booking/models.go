package booking

import (
	"strconv"
	"strings"
	"time"
)

// BookingType selects which catalog and pricing rule applies.
type BookingType string

const (
	BookingTypeTour     BookingType = "tour"
	BookingTypeTransfer BookingType = "transfer"
)

// IsValid checks if the booking type is valid
func (t BookingType) IsValid() bool {
	switch t {
	case BookingTypeTour, BookingTypeTransfer:
		return true
	}
	return false
}

// String returns the string representation of BookingType
func (t BookingType) String() string {
	return string(t)
}

// Service tiers for tours. Transfers are always private.
const (
	ServiceTypeRegular = "regular"
	ServiceTypePrivate = "private"
)

// FlexibleTransferTime is the single time slot every transfer offers:
// pickup is arranged with the customer, not scheduled.
const FlexibleTransferTime = "Flexible Transfer Time"

// Default country code shown in the phone selector.
const DefaultCountryCode = "+506"

// GuestCount parses the guests field, which arrives as entered text. Any
// parse failure or non-positive value falls back to 1.
func GuestCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Selection is the initial form state handed to the frontend, either the
// plain defaults or a deep-link prefill.
type Selection struct {
	BookingType BookingType `json:"booking_type"`
	Tour        string      `json:"tour"`
	TourTime    string      `json:"tour_time"`
	ServiceType string      `json:"service_type"`
	Guests      string      `json:"guests"`
	CountryCode string      `json:"country_code"`
}

// RelayPayload is the flat key/value structure handed to the email relay.
// The relay is an opaque boundary: it gets these fields and reports
// success or failure, nothing more.
type RelayPayload struct {
	FromName       string  `json:"from_name"`
	CustomerEmail  string  `json:"customer_email"`
	CustomerPhone  string  `json:"customer_phone"`
	TourName       string  `json:"tour_name"`
	TourTime       string  `json:"tour_time"`
	PickupTime     string  `json:"pickup_time"`
	PickupLocation string  `json:"pickup_location"`
	Guests         string  `json:"guests"`
	TotalPrice     float64 `json:"total_price"`
	BookingDate    string  `json:"booking_date"`
	ServiceType    string  `json:"service_type"`
	Message        string  `json:"message"`
}

// BuildRelayPayload flattens a validated request and its computed total
// into the relay structure. Transfers get fixed labels in place of the
// tour-specific fields.
func BuildRelayPayload(req *Request, totalPrice float64) RelayPayload {
	tourTime := req.TourTime
	serviceType := strings.ToUpper(req.ServiceType)
	if req.BookingType == BookingTypeTransfer {
		tourTime = "PRIVATE TRANSFER"
		serviceType = "PRIVATE TRANSPORT"
	}

	return RelayPayload{
		FromName:       req.Name,
		CustomerEmail:  req.Email,
		CustomerPhone:  req.CountryCode + " " + req.Phone,
		TourName:       req.Tour,
		TourTime:       tourTime,
		PickupTime:     req.PickupTime,
		PickupLocation: req.MeetingPlace,
		Guests:         req.Guests,
		TotalPrice:     totalPrice,
		BookingDate:    req.Date,
		ServiceType:    serviceType,
		Message:        "[TYPE: " + strings.ToUpper(req.BookingType.String()) + "] " + req.Message,
	}
}

// PendingRequest is a validated booking request waiting for the explicit
// confirmation step. It lives in Redis under a TTL; it is never persisted
// beyond that.
type PendingRequest struct {
	ConfirmationID string       `json:"confirmation_id"`
	Request        Request      `json:"request"`
	Quote          Quote        `json:"quote"`
	Payload        RelayPayload `json:"payload"`
	CreatedAt      time.Time    `json:"created_at"`
}
