package notifications

import (
	"context"
	"fmt"
	"sync"

	"selvatours/internal/booking"
	"selvatours/internal/shared/config"
	"selvatours/pkg/logger"
)

// Service ties the producer, consumer workers and email delivery together.
// It satisfies the relay interface the booking service depends on.
type Service interface {
	SendBookingRequest(ctx context.Context, confirmationID string, payload booking.RelayPayload) error
	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type service struct {
	cfg      *config.Config
	producer Producer
	consumer Consumer
	logger   *logger.Logger

	mu      sync.Mutex
	running bool
}

// NewService builds the relay from application config. When SMTP is not
// configured the consumer falls back to the mock email service so local
// development still drains the topic.
func NewService(cfg *config.Config) (Service, error) {
	producer, err := NewProducer(DefaultProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize notification producer: %w", err)
	}

	log := logger.GetDefault()

	var emailService EmailService
	smtpConfig := NewSMTPConfig(cfg)
	if err := smtpConfig.Validate(); err != nil {
		log.Warn("SMTP not configured, using mock email delivery", "reason", err.Error())
		emailService = NewMockEmailService()
	} else {
		emailService, err = NewSMTPEmailService(smtpConfig)
		if err != nil {
			producer.Close()
			return nil, fmt.Errorf("failed to initialize email service: %w", err)
		}
	}

	consumerConfig := DefaultConsumerConfig(
		cfg.Kafka.Brokers,
		cfg.Kafka.NotificationTopic,
		cfg.Kafka.ConsumerGroupID,
		cfg.Kafka.NumConsumerWorkers,
	)
	consumer, err := NewConsumer(consumerConfig, emailService)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to initialize notification consumer: %w", err)
	}

	return &service{
		cfg:      cfg,
		producer: producer,
		consumer: consumer,
		logger:   log,
	}, nil
}

// SendBookingRequest publishes the booking request to the relay topic. The
// publish is synchronous, so a nil return means the broker has the message
// and the email workers will deliver it.
func (s *service) SendBookingRequest(ctx context.Context, confirmationID string, payload booking.RelayPayload) error {
	notification := NewBookingRequestNotification(
		confirmationID,
		payload,
		s.cfg.Email.OperatorEmail,
		s.cfg.Email.FromName,
	)

	if err := s.producer.Publish(ctx, notification); err != nil {
		return fmt.Errorf("failed to relay booking request %s: %w", confirmationID, err)
	}

	s.logger.LogBookingRequestSent(ctx, confirmationID, notification.RecipientEmail)
	return nil
}

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("notification service already running")
	}

	if err := s.consumer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start notification consumers: %w", err)
	}

	s.running = true
	s.logger.Info("✅ Notification service started")
	return nil
}

func (s *service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}

	var errs []error
	if err := s.consumer.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := s.producer.Close(); err != nil {
		errs = append(errs, err)
	}
	s.running = false

	if len(errs) > 0 {
		return fmt.Errorf("errors stopping notification service: %v", errs)
	}
	s.logger.Info("✅ Notification service stopped")
	return nil
}

func (s *service) HealthCheck(ctx context.Context) error {
	if err := s.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer unhealthy: %w", err)
	}
	if err := s.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer unhealthy: %w", err)
	}
	return nil
}
