package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// memoryStore is an in-process PendingStore for tests.
type memoryStore struct {
	pending map[string]*PendingRequest
	putErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{pending: make(map[string]*PendingRequest)}
}

func (s *memoryStore) Put(ctx context.Context, pending *PendingRequest) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.pending[pending.ConfirmationID] = pending
	return nil
}

func (s *memoryStore) Get(ctx context.Context, confirmationID string) (*PendingRequest, error) {
	pending, ok := s.pending[confirmationID]
	if !ok {
		return nil, ErrConfirmationNotFound
	}
	return pending, nil
}

func (s *memoryStore) Delete(ctx context.Context, confirmationID string) error {
	delete(s.pending, confirmationID)
	return nil
}

// stubRelay records sends and can be told to fail.
type stubRelay struct {
	sendErr error
	sent    []RelayPayload
}

func (r *stubRelay) SendBookingRequest(ctx context.Context, confirmationID string, payload RelayPayload) error {
	if r.sendErr != nil {
		return r.sendErr
	}
	r.sent = append(r.sent, payload)
	return nil
}

func newTestService(store PendingStore, relay Relay) Service {
	return NewService(testRepo(), store, relay, 15*time.Minute)
}

func TestAvailableTimesTour(t *testing.T) {
	svc := newTestService(newMemoryStore(), &stubRelay{})

	times := svc.AvailableTimes(BookingTypeTour, "Waterfall Hike")
	want := []string{"9:00 AM", "1:00 PM"}
	if len(times) != len(want) {
		t.Fatalf("times = %v, want %v", times, want)
	}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("times[%d] = %q, want %q", i, times[i], want[i])
		}
	}
}

func TestAvailableTimesTransfer(t *testing.T) {
	svc := newTestService(newMemoryStore(), &stubRelay{})

	times := svc.AvailableTimes(BookingTypeTransfer, "Uvita - San Jose")
	if len(times) != 1 || times[0] != FlexibleTransferTime {
		t.Fatalf("times = %v, want the single flexible slot", times)
	}
}

func TestAvailableTimesUnknownTour(t *testing.T) {
	svc := newTestService(newMemoryStore(), &stubRelay{})

	times := svc.AvailableTimes(BookingTypeTour, "Ziplining Deluxe")
	if len(times) != 0 {
		t.Fatalf("unknown tour must yield an empty slot list, got %v", times)
	}
}

func TestPrefillTourDeepLink(t *testing.T) {
	svc := newTestService(newMemoryStore(), &stubRelay{})

	selection := svc.Prefill(PrefillQuery{Tour: "Waterfall Hike"})
	if selection.BookingType != BookingTypeTour {
		t.Errorf("booking type = %q, want tour", selection.BookingType)
	}
	if selection.Tour != "Waterfall Hike" {
		t.Errorf("tour = %q", selection.Tour)
	}
	if selection.ServiceType != ServiceTypeRegular {
		t.Errorf("service type = %q, want regular", selection.ServiceType)
	}
	if selection.Guests != "1" || selection.CountryCode != DefaultCountryCode {
		t.Errorf("defaults not applied: %+v", selection)
	}
}

func TestPrefillTransferDeepLink(t *testing.T) {
	svc := newTestService(newMemoryStore(), &stubRelay{})

	selection := svc.Prefill(PrefillQuery{Type: "transfer", ID: "tr-09"})
	if selection.BookingType != BookingTypeTransfer {
		t.Errorf("booking type = %q, want transfer", selection.BookingType)
	}
	if selection.Tour != "Uvita - San Jose" {
		t.Errorf("route = %q, want resolved route name", selection.Tour)
	}
	if selection.TourTime != FlexibleTransferTime {
		t.Errorf("tour time = %q, want flexible slot", selection.TourTime)
	}
	if selection.ServiceType != ServiceTypePrivate {
		t.Errorf("service type = %q, want private", selection.ServiceType)
	}
}

func TestPrefillUnknownTransferID(t *testing.T) {
	svc := newTestService(newMemoryStore(), &stubRelay{})

	selection := svc.Prefill(PrefillQuery{Type: "transfer", ID: "tr-404"})
	if selection.BookingType != BookingTypeTransfer {
		t.Errorf("booking type = %q, want transfer", selection.BookingType)
	}
	if selection.Tour != "" {
		t.Errorf("route = %q, want empty for a stale id", selection.Tour)
	}
}

func TestSubmitRequestParksForConfirmation(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, &stubRelay{})

	resp, err := svc.SubmitRequest(context.Background(), validTourRequest())
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if resp.ConfirmationID == "" {
		t.Fatal("missing confirmation id")
	}
	if resp.Quote.TotalPrice != 90 {
		t.Errorf("quoted total = %.2f, want 90 (45 x 2)", resp.Quote.TotalPrice)
	}
	if _, ok := store.pending[resp.ConfirmationID]; !ok {
		t.Error("request was not parked in the pending store")
	}
	if resp.ExpiresAt.Before(time.Now()) {
		t.Error("expiry must be in the future")
	}
}

func TestSubmitRequestRejectsInvalid(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, &stubRelay{})

	req := validTourRequest()
	req.Email = "nope"

	_, err := svc.SubmitRequest(context.Background(), req)
	var vErr *ValidationFailedError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationFailedError, got %v", err)
	}
	if vErr.Fields["email"] != "Invalid email format" {
		t.Errorf("fields = %v", vErr.Fields)
	}
	if len(store.pending) != 0 {
		t.Error("invalid request must not be parked")
	}
}

func TestConfirmRequestSendsAndClears(t *testing.T) {
	store := newMemoryStore()
	relay := &stubRelay{}
	svc := newTestService(store, relay)

	resp, err := svc.SubmitRequest(context.Background(), validTourRequest())
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}

	if err := svc.ConfirmRequest(context.Background(), resp.ConfirmationID); err != nil {
		t.Fatalf("confirm error: %v", err)
	}

	if len(relay.sent) != 1 {
		t.Fatalf("relay sends = %d, want 1", len(relay.sent))
	}
	if relay.sent[0].FromName != "Jane Traveler" {
		t.Errorf("sent payload = %+v", relay.sent[0])
	}
	if _, ok := store.pending[resp.ConfirmationID]; ok {
		t.Error("confirmed request must be cleared from the store")
	}
}

func TestConfirmRequestSendFailureKeepsPending(t *testing.T) {
	store := newMemoryStore()
	relay := &stubRelay{sendErr: fmt.Errorf("broker unreachable")}
	svc := newTestService(store, relay)

	resp, err := svc.SubmitRequest(context.Background(), validTourRequest())
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}

	err = svc.ConfirmRequest(context.Background(), resp.ConfirmationID)
	if !errors.Is(err, ErrRelaySendFailed) {
		t.Fatalf("want ErrRelaySendFailed, got %v", err)
	}

	// The user can retry with the same confirmation id.
	if _, ok := store.pending[resp.ConfirmationID]; !ok {
		t.Fatal("failed send must keep the pending request")
	}

	relay.sendErr = nil
	if err := svc.ConfirmRequest(context.Background(), resp.ConfirmationID); err != nil {
		t.Fatalf("retry confirm error: %v", err)
	}
	if len(relay.sent) != 1 {
		t.Fatalf("relay sends = %d, want 1 after retry", len(relay.sent))
	}
}

func TestConfirmRequestUnknownID(t *testing.T) {
	svc := newTestService(newMemoryStore(), &stubRelay{})

	err := svc.ConfirmRequest(context.Background(), "missing")
	if !errors.Is(err, ErrConfirmationNotFound) {
		t.Fatalf("want ErrConfirmationNotFound, got %v", err)
	}
}

func TestDiscardRequest(t *testing.T) {
	store := newMemoryStore()
	relay := &stubRelay{}
	svc := newTestService(store, relay)

	resp, err := svc.SubmitRequest(context.Background(), validTourRequest())
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}

	if err := svc.DiscardRequest(context.Background(), resp.ConfirmationID); err != nil {
		t.Fatalf("discard error: %v", err)
	}
	if len(store.pending) != 0 {
		t.Error("discard must clear the pending request")
	}
	if len(relay.sent) != 0 {
		t.Error("discard must not send anything")
	}

	if err := svc.DiscardRequest(context.Background(), resp.ConfirmationID); !errors.Is(err, ErrConfirmationNotFound) {
		t.Fatalf("second discard should report not found, got %v", err)
	}
}
