package booking

// Request is a booking request as submitted by the form. Guests stays a
// string on purpose: it is user-entered text and the pricing rule defines
// the fallback for unparseable values.
type Request struct {
	BookingType  BookingType `json:"booking_type" validate:"required,oneof=tour transfer"`
	Name         string      `json:"name" validate:"required,min=3"`
	Email        string      `json:"email" validate:"required,email"`
	CountryCode  string      `json:"country_code" validate:"required"`
	Phone        string      `json:"phone" validate:"required,min=7,digitsonly"`
	Age          string      `json:"age" validate:"required"`
	Tour         string      `json:"tour" validate:"required"`
	TourTime     string      `json:"tour_time" validate:"required"`
	ServiceType  string      `json:"service_type" validate:"required,oneof=regular private"`
	Date         string      `json:"date" validate:"required"`
	Guests       string      `json:"guests" validate:"required"`
	MeetingPlace string      `json:"meeting_place" validate:"required,min=5"`
	PickupTime   string      `json:"pickup_time" validate:"required"`
	Message      string      `json:"message" validate:"max=1000"`
}

// QuoteRequest carries the fields the pricing resolver computes over.
type QuoteRequest struct {
	BookingType BookingType `json:"booking_type" binding:"required,oneof=tour transfer"`
	Tour        string      `json:"tour" binding:"required"`
	ServiceType string      `json:"service_type"`
	Guests      string      `json:"guests"`
}
