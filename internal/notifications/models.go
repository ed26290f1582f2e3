package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"selvatours/internal/booking"
)

type NotificationType string

const (
	NotificationTypeBookingRequest NotificationType = "BOOKING_REQUEST"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "PENDING"
	StatusQueued  NotificationStatus = "QUEUED"
	StatusSending NotificationStatus = "SENDING"
	StatusSent    NotificationStatus = "SENT"
	StatusFailed  NotificationStatus = "FAILED"
)

// EmailNotification is the message published to Kafka and consumed by the
// email workers. RecipientEmail is the operator inbox that receives booking
// requests; ReplyTo carries the customer's address so staff replies reach
// them directly.
type EmailNotification struct {
	ID             uuid.UUID              `json:"id"`
	Type           NotificationType       `json:"type"`
	ConfirmationID string                 `json:"confirmation_id"`
	RecipientEmail string                 `json:"recipient_email"`
	RecipientName  string                 `json:"recipient_name"`
	ReplyTo        string                 `json:"reply_to,omitempty"`
	Subject        string                 `json:"subject"`
	TemplateData   map[string]interface{} `json:"template_data"`
	Status         NotificationStatus     `json:"status"`
	RetryCount     int                    `json:"retry_count"`
	MaxRetries     int                    `json:"max_retries"`
	LastError      *string                `json:"last_error,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	SentAt         *time.Time             `json:"sent_at,omitempty"`
}

// NewBookingRequestNotification builds the notification for a confirmed
// booking request. The relay payload fields map one to one onto the email
// template data.
func NewBookingRequestNotification(confirmationID string, payload booking.RelayPayload, operatorEmail, operatorName string) *EmailNotification {
	now := time.Now()
	return &EmailNotification{
		ID:             uuid.New(),
		Type:           NotificationTypeBookingRequest,
		ConfirmationID: confirmationID,
		RecipientEmail: operatorEmail,
		RecipientName:  operatorName,
		ReplyTo:        payload.CustomerEmail,
		Subject:        fmt.Sprintf("Booking request: %s (%s)", payload.TourName, payload.BookingDate),
		TemplateData: map[string]interface{}{
			"from_name":       payload.FromName,
			"customer_email":  payload.CustomerEmail,
			"customer_phone":  payload.CustomerPhone,
			"tour_name":       payload.TourName,
			"tour_time":       payload.TourTime,
			"pickup_time":     payload.PickupTime,
			"pickup_location": payload.PickupLocation,
			"guests":          payload.Guests,
			"total_price":     payload.TotalPrice,
			"booking_date":    payload.BookingDate,
			"service_type":    payload.ServiceType,
			"message":         payload.Message,
			"confirmation_id": confirmationID,
		},
		Status:     StatusPending,
		RetryCount: 0,
		MaxRetries: 3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (n *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func FromJSON(data []byte) (*EmailNotification, error) {
	var n EmailNotification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return &n, nil
}

// GetPartitionKey keys messages by confirmation id so retries for the same
// booking request land on the same partition in order.
func (n *EmailNotification) GetPartitionKey() string {
	if n.ConfirmationID != "" {
		return n.ConfirmationID
	}
	return n.ID.String()
}

func (n *EmailNotification) MarkQueued() {
	n.Status = StatusQueued
	n.UpdatedAt = time.Now()
}

func (n *EmailNotification) MarkSending() {
	n.Status = StatusSending
	n.UpdatedAt = time.Now()
}

func (n *EmailNotification) MarkSent() {
	now := time.Now()
	n.Status = StatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *EmailNotification) MarkFailed(err error) {
	n.Status = StatusFailed
	n.RetryCount++
	msg := err.Error()
	n.LastError = &msg
	n.UpdatedAt = time.Now()
}

func (n *EmailNotification) CanRetry() bool {
	return n.RetryCount < n.MaxRetries
}
