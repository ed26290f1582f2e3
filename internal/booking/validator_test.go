package booking

import (
	"strings"
	"testing"
)

func validTourRequest() *Request {
	return &Request{
		BookingType:  BookingTypeTour,
		Name:         "Jane Traveler",
		Email:        "jane@example.com",
		CountryCode:  "+506",
		Phone:        "88881234",
		Age:          "34",
		Tour:         "Waterfall Hike",
		TourTime:     "9:00 AM",
		ServiceType:  ServiceTypeRegular,
		Date:         "2026-09-12",
		Guests:       "2",
		MeetingPlace: "Hotel Costa Verde, Uvita",
		PickupTime:   "08:00",
		Message:      "",
	}
}

func validTransferRequest() *Request {
	req := validTourRequest()
	req.BookingType = BookingTypeTransfer
	req.Tour = "Uvita - San Jose"
	req.TourTime = FlexibleTransferTime
	req.ServiceType = ServiceTypePrivate
	req.PickupTime = "14:00"
	return req
}

func TestValidateRequestAccepted(t *testing.T) {
	if errs := ValidateRequest(validTourRequest()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if errs := ValidateRequest(validTransferRequest()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRequestFieldMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		field   string
		message string
	}{
		{"short name", func(r *Request) { r.Name = "Jo" }, "name", "Full name is required"},
		{"missing name", func(r *Request) { r.Name = "" }, "name", "Full name is required"},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, "email", "Invalid email format"},
		{"short phone", func(r *Request) { r.Phone = "123" }, "phone", "Valid number required"},
		{"alpha phone", func(r *Request) { r.Phone = "8888abcd" }, "phone", "Only numbers allowed"},
		{"missing age", func(r *Request) { r.Age = "" }, "age", "Age is required"},
		{"missing tour", func(r *Request) { r.Tour = "" }, "tour", "Please select an option"},
		{"missing time", func(r *Request) { r.TourTime = "" }, "tour_time", "Please select a time"},
		{"missing date", func(r *Request) { r.Date = "" }, "date", "Please select a date"},
		{"missing guests", func(r *Request) { r.Guests = "" }, "guests", "Please enter number of guests"},
		{"short meeting place", func(r *Request) { r.MeetingPlace = "Main" }, "meeting_place", "Please specify location"},
		{"missing pickup", func(r *Request) { r.PickupTime = "" }, "pickup_time", "Please select pickup time"},
		{"long message", func(r *Request) { r.Message = strings.Repeat("x", 1001) }, "message", "Message must be 1000 characters or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTourRequest()
			tt.mutate(req)

			errs := ValidateRequest(req)
			if got := errs[tt.field]; got != tt.message {
				t.Errorf("errors[%q] = %q, want %q (all: %v)", tt.field, got, tt.message, errs)
			}
		})
	}
}

func TestValidateRequestPickupOrdering(t *testing.T) {
	// Pickup after the tour start is rejected; the 24-hour input is
	// compared against the 12-hour schedule label on the minute scale.
	req := validTourRequest()
	req.TourTime = "9:00 AM"
	req.PickupTime = "10:00"

	errs := ValidateRequest(req)
	if got := errs["pickup_time"]; got != PickupOrderingMessage {
		t.Fatalf("errors[pickup_time] = %q, want %q", got, PickupOrderingMessage)
	}

	// Equality is also rejected; pickup must be strictly earlier.
	req.PickupTime = "09:00"
	errs = ValidateRequest(req)
	if got := errs["pickup_time"]; got != PickupOrderingMessage {
		t.Fatalf("errors[pickup_time] = %q, want %q", got, PickupOrderingMessage)
	}

	req.PickupTime = "08:00"
	if errs := ValidateRequest(req); len(errs) != 0 {
		t.Fatalf("earlier pickup should pass, got %v", errs)
	}
}

func TestValidateRequestPickupOrderingSkippedForTransfers(t *testing.T) {
	req := validTransferRequest()
	// Flexible Transfer Time parses to 0, so any pickup would "follow"
	// the start. The ordering rule must not apply to transfers.
	req.PickupTime = "18:00"

	if errs := ValidateRequest(req); len(errs) != 0 {
		t.Fatalf("transfer pickup must not be order-checked, got %v", errs)
	}
}

func TestValidateRequestOrderingSkippedWhenFieldsInvalid(t *testing.T) {
	req := validTourRequest()
	req.PickupTime = ""

	errs := ValidateRequest(req)
	if got := errs["pickup_time"]; got != "Please select pickup time" {
		t.Fatalf("missing pickup must report the required message, got %q", got)
	}
}
