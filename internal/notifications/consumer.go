package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"selvatours/pkg/logger"
)

type ConsumerConfig struct {
	Brokers        []string
	Topic          string
	GroupID        string
	NumWorkers     int
	RetryBackoff   time.Duration
	SessionTimeout time.Duration
}

func DefaultConsumerConfig(brokers []string, topic, groupID string, numWorkers int) *ConsumerConfig {
	if numWorkers <= 0 {
		numWorkers = 3
	}
	return &ConsumerConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		NumWorkers:     numWorkers,
		RetryBackoff:   2 * time.Second,
		SessionTimeout: 30 * time.Second,
	}
}

// Consumer runs a pool of workers that pull notifications off Kafka and
// hand them to the email service.
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	emailService  EmailService
	logger        *logger.Logger
	wg            sync.WaitGroup
	cancel        context.CancelFunc
	mu            sync.Mutex
	running       bool
}

func NewConsumer(config *ConsumerConfig, emailService EmailService) (Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		emailService:  emailService,
		logger:        logger.GetDefault(),
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return fmt.Errorf("consumer already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true

	handler := &notificationHandler{
		emailService: c.emailService,
		retryBackoff: c.config.RetryBackoff,
		logger:       c.logger,
	}

	for i := 0; i < c.config.NumWorkers; i++ {
		c.wg.Add(1)
		go c.runWorker(runCtx, i, handler)
	}

	c.wg.Add(1)
	go c.handleErrors(runCtx)

	c.logger.Info("✅ Notification consumers started",
		"group_id", c.config.GroupID,
		"topic", c.config.Topic,
		"workers", c.config.NumWorkers,
	)
	return nil
}

func (c *kafkaConsumer) runWorker(ctx context.Context, workerID int, handler sarama.ConsumerGroupHandler) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("📥 Consumer worker stopping", "worker_id", workerID)
			return
		default:
		}

		// Consume blocks until a rebalance or error, then we loop and rejoin.
		if err := c.consumerGroup.Consume(ctx, []string{c.config.Topic}, handler); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("Consumer session ended with error",
				"worker_id", workerID,
				"error", err,
			)
			time.Sleep(c.config.RetryBackoff)
		}
	}
}

func (c *kafkaConsumer) handleErrors(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-c.consumerGroup.Errors():
			if !ok {
				return
			}
			c.logger.Error("Consumer group error", "error", err)
		}
	}
}

func (c *kafkaConsumer) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return nil
	}

	c.cancel()
	c.wg.Wait()

	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	c.running = false
	c.logger.Info("✅ Notification consumers stopped")
	return nil
}

func (c *kafkaConsumer) HealthCheck(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return fmt.Errorf("consumer not running")
	}
	return nil
}

// notificationHandler implements sarama.ConsumerGroupHandler.
type notificationHandler struct {
	emailService EmailService
	retryBackoff time.Duration
	logger       *logger.Logger
}

func (h *notificationHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.logger.Info("📥 Consumer session started", "member_id", session.MemberID())
	return nil
}

func (h *notificationHandler) Cleanup(session sarama.ConsumerGroupSession) error {
	return nil
}

func (h *notificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			h.processMessage(session.Context(), message)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *notificationHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	notification, err := FromJSON(message.Value)
	if err != nil {
		h.logger.Error("Dropping malformed notification message",
			"partition", message.Partition,
			"offset", message.Offset,
			"error", err,
		)
		return
	}

	if err := h.sendWithRetry(ctx, notification); err != nil {
		h.logger.Error("Notification delivery exhausted retries",
			"notification_id", notification.ID,
			"confirmation_id", notification.ConfirmationID,
			"retries", notification.RetryCount,
			"error", err,
		)
		return
	}

	h.logger.Info("📧 Notification delivered",
		"notification_id", notification.ID,
		"confirmation_id", notification.ConfirmationID,
		"recipient", notification.RecipientEmail,
	)
}

func (h *notificationHandler) sendWithRetry(ctx context.Context, notification *EmailNotification) error {
	var lastErr error
	for attempt := 0; attempt <= notification.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := h.retryBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		notification.MarkSending()
		if err := h.emailService.SendNotification(ctx, notification); err != nil {
			notification.MarkFailed(err)
			lastErr = err
			continue
		}

		notification.MarkSent()
		return nil
	}
	return lastErr
}
