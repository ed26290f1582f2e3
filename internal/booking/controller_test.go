package booking

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupTestRouter(store PendingStore, relay Relay) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	controller := NewController(newTestService(store, relay))
	api := engine.Group("/api/v1")
	SetupBookingRoutes(api, controller)

	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (%s)", err, recorder.Body.String())
	}
	return envelope
}

func TestGetAvailableTimesEndpoint(t *testing.T) {
	engine := setupTestRouter(newMemoryStore(), &stubRelay{})

	recorder := doJSON(t, engine, http.MethodGet, "/api/v1/booking/times?type=tour&tour=Waterfall+Hike", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	envelope := decodeEnvelope(t, recorder)
	data := envelope["data"].(map[string]interface{})
	times := data["times"].([]interface{})
	if len(times) != 2 || times[0] != "9:00 AM" || times[1] != "1:00 PM" {
		t.Errorf("times = %v", times)
	}
}

func TestGetAvailableTimesRejectsBadType(t *testing.T) {
	engine := setupTestRouter(newMemoryStore(), &stubRelay{})

	recorder := doJSON(t, engine, http.MethodGet, "/api/v1/booking/times?type=cruise", nil)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestPostQuoteEndpoint(t *testing.T) {
	engine := setupTestRouter(newMemoryStore(), &stubRelay{})

	recorder := doJSON(t, engine, http.MethodPost, "/api/v1/booking/quote", QuoteRequest{
		BookingType: BookingTypeTransfer,
		Tour:        "Uvita - San Jose",
		Guests:      "6",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	envelope := decodeEnvelope(t, recorder)
	data := envelope["data"].(map[string]interface{})
	if data["total_price"].(float64) != 120 {
		t.Errorf("total = %v, want 120", data["total_price"])
	}
	if data["flat_rate"].(bool) != true {
		t.Error("transfer quote must be flat rate")
	}
}

func TestPostRequestValidationErrors(t *testing.T) {
	engine := setupTestRouter(newMemoryStore(), &stubRelay{})

	req := validTourRequest()
	req.Email = "not-an-email"
	req.PickupTime = "10:00" // after the 9:00 AM start

	recorder := doJSON(t, engine, http.MethodPost, "/api/v1/booking/requests", req)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", recorder.Code, recorder.Body.String())
	}

	envelope := decodeEnvelope(t, recorder)
	errs := envelope["errors"].(map[string]interface{})
	if errs["email"] != "Invalid email format" {
		t.Errorf("email error = %v", errs["email"])
	}
	if errs["pickup_time"] != PickupOrderingMessage {
		t.Errorf("pickup_time error = %v", errs["pickup_time"])
	}
}

func TestSubmitConfirmFlowOverHTTP(t *testing.T) {
	store := newMemoryStore()
	relay := &stubRelay{}
	engine := setupTestRouter(store, relay)

	recorder := doJSON(t, engine, http.MethodPost, "/api/v1/booking/requests", validTourRequest())
	if recorder.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	envelope := decodeEnvelope(t, recorder)
	data := envelope["data"].(map[string]interface{})
	confirmationID := data["confirmation_id"].(string)
	if confirmationID == "" {
		t.Fatal("missing confirmation id")
	}

	recorder = doJSON(t, engine, http.MethodPost, "/api/v1/booking/requests/"+confirmationID+"/confirm", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	if len(relay.sent) != 1 {
		t.Fatalf("relay sends = %d, want 1", len(relay.sent))
	}

	envelope = decodeEnvelope(t, recorder)
	if envelope["message"] != "Booking request sent. We'll contact you within 12 hours." {
		t.Errorf("message = %v", envelope["message"])
	}

	// Second confirm finds nothing to send.
	recorder = doJSON(t, engine, http.MethodPost, "/api/v1/booking/requests/"+confirmationID+"/confirm", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("repeat confirm status = %d, want 404", recorder.Code)
	}
}

func TestConfirmRelayFailureIsRetryable(t *testing.T) {
	store := newMemoryStore()
	relay := &stubRelay{sendErr: errBrokerDown}
	engine := setupTestRouter(store, relay)

	recorder := doJSON(t, engine, http.MethodPost, "/api/v1/booking/requests", validTourRequest())
	if recorder.Code != http.StatusCreated {
		t.Fatalf("submit status = %d", recorder.Code)
	}
	data := decodeEnvelope(t, recorder)["data"].(map[string]interface{})
	confirmationID := data["confirmation_id"].(string)

	recorder = doJSON(t, engine, http.MethodPost, "/api/v1/booking/requests/"+confirmationID+"/confirm", nil)
	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("confirm status = %d, want 502", recorder.Code)
	}
	if decodeEnvelope(t, recorder)["message"] != "Submission error. Please try again." {
		t.Errorf("message = %v", decodeEnvelope(t, recorder)["message"])
	}

	relay.sendErr = nil
	recorder = doJSON(t, engine, http.MethodPost, "/api/v1/booking/requests/"+confirmationID+"/confirm", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("retry confirm status = %d, want 200", recorder.Code)
	}
}

func TestDiscardEndpoint(t *testing.T) {
	store := newMemoryStore()
	engine := setupTestRouter(store, &stubRelay{})

	recorder := doJSON(t, engine, http.MethodPost, "/api/v1/booking/requests", validTourRequest())
	data := decodeEnvelope(t, recorder)["data"].(map[string]interface{})
	confirmationID := data["confirmation_id"].(string)

	recorder = doJSON(t, engine, http.MethodDelete, "/api/v1/booking/requests/"+confirmationID, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("discard status = %d", recorder.Code)
	}

	recorder = doJSON(t, engine, http.MethodDelete, "/api/v1/booking/requests/"+confirmationID, nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("repeat discard status = %d, want 404", recorder.Code)
	}
}

func TestGetPrefillEndpoint(t *testing.T) {
	engine := setupTestRouter(newMemoryStore(), &stubRelay{})

	recorder := doJSON(t, engine, http.MethodGet, "/api/v1/booking/prefill?tour=Waterfall%20Hike", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	data := decodeEnvelope(t, recorder)["data"].(map[string]interface{})
	if data["tour"] != "Waterfall Hike" {
		t.Errorf("tour = %v", data["tour"])
	}
	if data["booking_type"] != "tour" {
		t.Errorf("booking_type = %v", data["booking_type"])
	}

	recorder = doJSON(t, engine, http.MethodGet, "/api/v1/booking/prefill?type=transfer&id=tr-09", nil)
	data = decodeEnvelope(t, recorder)["data"].(map[string]interface{})
	if data["tour"] != "Uvita - San Jose" {
		t.Errorf("route = %v", data["tour"])
	}
	if data["tour_time"] != FlexibleTransferTime {
		t.Errorf("tour_time = %v", data["tour_time"])
	}
}

var errBrokerDown = errors.New("broker unreachable")
