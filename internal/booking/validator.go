package booking

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PickupOrderingMessage is attached to pickup_time when a tour pickup does
// not precede the tour start.
const PickupOrderingMessage = "Pickup must be earlier than the tour start time"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their json names so errors line up with the
	// form fields that produced them.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("digitsonly", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return false
		}
		for _, r := range value {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	return v
}

// fieldMessages mirrors the form's inline messages, keyed by field then
// failing rule.
var fieldMessages = map[string]map[string]string{
	"booking_type":  {"required": "Booking type is required", "oneof": "Booking type must be tour or transfer"},
	"name":          {"required": "Full name is required", "min": "Full name is required"},
	"email":         {"required": "Invalid email format", "email": "Invalid email format"},
	"country_code":  {"required": "Country code is required"},
	"phone":         {"required": "Valid number required", "min": "Valid number required", "digitsonly": "Only numbers allowed"},
	"age":           {"required": "Age is required"},
	"tour":          {"required": "Please select an option"},
	"tour_time":     {"required": "Please select a time"},
	"service_type":  {"required": "Service type required", "oneof": "Service type required"},
	"date":          {"required": "Please select a date"},
	"guests":        {"required": "Please enter number of guests"},
	"meeting_place": {"required": "Please specify location", "min": "Please specify location"},
	"pickup_time":   {"required": "Please select pickup time"},
	"message":       {"max": "Message must be 1000 characters or less"},
}

// ValidateRequest enforces field-level rules plus the cross-field pickup
// ordering constraint. It returns a field -> message map; an empty map
// means the request may proceed to the confirmation step.
func ValidateRequest(req *Request) map[string]string {
	errors := make(map[string]string)

	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			errors["request"] = "Invalid request"
			return errors
		}

		for _, fieldError := range validationErrors {
			field := fieldError.Field()
			if _, seen := errors[field]; seen {
				continue // keep the first failing rule per field
			}
			if message, known := fieldMessages[field][fieldError.Tag()]; known {
				errors[field] = message
			} else {
				errors[field] = "Invalid value"
			}
		}
	}

	// Cross-field rule, tours only: pickup must precede the tour start.
	// Transfers have a single flexible slot with nothing to precede.
	if req.BookingType == BookingTypeTour && errors["pickup_time"] == "" && errors["tour_time"] == "" {
		pickupMin := ConvertToMinutes(req.PickupTime)
		tourMin := ConvertToMinutes(req.TourTime)
		if pickupMin >= tourMin {
			errors["pickup_time"] = PickupOrderingMessage
		}
	}

	return errors
}
