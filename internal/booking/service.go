package booking

import (
	"context"
	"fmt"
	"time"

	"selvatours/internal/catalog"
	"selvatours/pkg/logger"

	"github.com/google/uuid"
)

// Relay is the outbound email boundary (implemented by the notifications
// package; declared here to avoid a circular dependency). It is opaque:
// the engine hands over a flat payload and learns only success or failure.
type Relay interface {
	SendBookingRequest(ctx context.Context, confirmationID string, payload RelayPayload) error
}

// PrefillQuery carries the deep-link query parameters read at form
// initialization.
type PrefillQuery struct {
	Type string // "transfer" selects a transfer prefill when paired with ID
	ID   string // transfer route id
	Tour string // url-decoded tour name
}

// ValidationFailedError carries the field -> message map for a rejected
// submission.
type ValidationFailedError struct {
	Fields map[string]string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// ErrRelaySendFailed wraps relay failures so the controller can map them
// to a retryable response. The pending request is retained.
var ErrRelaySendFailed = fmt.Errorf("booking request send failed")

// Service interface defines the contract for the booking engine
type Service interface {
	AvailableTimes(bookingType BookingType, tourName string) []string
	Quote(ctx context.Context, req QuoteRequest) Quote
	Prefill(query PrefillQuery) Selection

	SubmitRequest(ctx context.Context, req *Request) (*PendingConfirmationResponse, error)
	ConfirmRequest(ctx context.Context, confirmationID string) error
	DiscardRequest(ctx context.Context, confirmationID string) error
}

// service implements the Service interface
type service struct {
	repo   catalog.Repository
	store  PendingStore
	relay  Relay
	ttl    time.Duration
	logger *logger.Logger
}

// NewService creates a new booking service instance
func NewService(repo catalog.Repository, store PendingStore, relay Relay, ttl time.Duration) Service {
	return &service{
		repo:   repo,
		store:  store,
		relay:  relay,
		ttl:    ttl,
		logger: logger.GetDefault(),
	}
}

// AvailableTimes computes the selectable time slots for the current
// selection. Transfers always get the single flexible slot; tours get
// their schedule split into ordered labels. A lookup miss degrades to an
// empty list rather than an error.
func (s *service) AvailableTimes(bookingType BookingType, tourName string) []string {
	if bookingType == BookingTypeTransfer {
		return []string{FlexibleTransferTime}
	}

	tour, found := s.repo.FindTourByName(tourName)
	if !found {
		return []string{}
	}

	slots := tour.ScheduleSlots()
	if slots == nil {
		return []string{}
	}
	return slots
}

// Quote prices the current selection.
func (s *service) Quote(ctx context.Context, req QuoteRequest) Quote {
	quote := ComputeQuote(s.repo, req)
	s.logger.LogQuoteComputed(ctx, req.BookingType.String(), req.Tour, quote.Guests, quote.TotalPrice)
	return quote
}

// Prefill builds the initial form selection from deep-link parameters.
// A transfer deep link resolves the route by id; a tour deep link passes
// the (already url-decoded) name through verbatim, so a stale link
// degrades at quote time instead of erroring here.
func (s *service) Prefill(query PrefillQuery) Selection {
	if query.Type == BookingTypeTransfer.String() && query.ID != "" {
		selection := Selection{
			BookingType: BookingTypeTransfer,
			TourTime:    FlexibleTransferTime,
			ServiceType: ServiceTypePrivate,
			Guests:      "1",
			CountryCode: DefaultCountryCode,
		}
		if transfer, found := s.repo.FindTransferByID(query.ID); found {
			selection.Tour = transfer.Route
		}
		return selection
	}

	return Selection{
		BookingType: BookingTypeTour,
		Tour:        query.Tour,
		ServiceType: ServiceTypeRegular,
		Guests:      "1",
		CountryCode: DefaultCountryCode,
	}
}

// SubmitRequest validates a booking request and parks it for the explicit
// confirmation step. Nothing is sent yet.
func (s *service) SubmitRequest(ctx context.Context, req *Request) (*PendingConfirmationResponse, error) {
	if fieldErrors := ValidateRequest(req); len(fieldErrors) > 0 {
		return nil, &ValidationFailedError{Fields: fieldErrors}
	}

	quote := ComputeQuote(s.repo, QuoteRequest{
		BookingType: req.BookingType,
		Tour:        req.Tour,
		ServiceType: req.ServiceType,
		Guests:      req.Guests,
	})

	pending := &PendingRequest{
		ConfirmationID: uuid.NewString(),
		Request:        *req,
		Quote:          quote,
		Payload:        BuildRelayPayload(req, quote.TotalPrice),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.Put(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to park request for confirmation: %w", err)
	}

	s.logger.LogBookingRequestPending(ctx, pending.ConfirmationID, req.BookingType.String(), req.Tour)

	return &PendingConfirmationResponse{
		ConfirmationID: pending.ConfirmationID,
		Quote:          quote,
		Payload:        pending.Payload,
		ExpiresAt:      pending.CreatedAt.Add(s.ttl),
	}, nil
}

// ConfirmRequest performs the final send. On relay failure the pending
// request is kept so the user can retry with the same confirmation id; on
// success it is discarded and the form resets.
func (s *service) ConfirmRequest(ctx context.Context, confirmationID string) error {
	pending, err := s.store.Get(ctx, confirmationID)
	if err != nil {
		return err
	}

	if err := s.relay.SendBookingRequest(ctx, pending.ConfirmationID, pending.Payload); err != nil {
		s.logger.LogBookingRequestSendFailed(ctx, confirmationID, err)
		return fmt.Errorf("%w: %v", ErrRelaySendFailed, err)
	}

	s.logger.LogBookingRequestSent(ctx, confirmationID, pending.Payload.CustomerEmail)

	// Best effort: an orphaned hold simply expires with its TTL.
	if err := s.store.Delete(ctx, confirmationID); err != nil {
		s.logger.WithError(err).Warn("failed to clear confirmed request")
	}

	return nil
}

// DiscardRequest drops a pending request (the user chose to edit instead
// of sending).
func (s *service) DiscardRequest(ctx context.Context, confirmationID string) error {
	if _, err := s.store.Get(ctx, confirmationID); err != nil {
		return err
	}
	return s.store.Delete(ctx, confirmationID)
}
