package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"selvatours/pkg/logger"
)

type ProducerConfig struct {
	Brokers         []string
	Topic           string
	RetryMax        int
	Timeout         time.Duration
	CompressionType sarama.CompressionCodec
	MaxMessageBytes int
}

func DefaultProducerConfig(brokers []string, topic string) *ProducerConfig {
	return &ProducerConfig{
		Brokers:         brokers,
		Topic:           topic,
		RetryMax:        3,
		Timeout:         10 * time.Second,
		CompressionType: sarama.CompressionSnappy,
		MaxMessageBytes: 1000000,
	}
}

// Producer publishes notifications to Kafka. Publish is synchronous so the
// caller learns whether the booking request actually reached the broker
// before the customer is told it was sent.
type Producer interface {
	Publish(ctx context.Context, notification *EmailNotification) error
	HealthCheck(ctx context.Context) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	logger   *logger.Logger
}

func NewProducer(config *ProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log := logger.GetDefault()
	log.Info("✅ Kafka producer connected",
		"brokers", config.Brokers,
		"topic", config.Topic,
	)

	return &kafkaProducer{
		producer: producer,
		config:   config,
		logger:   log,
	}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, notification *EmailNotification) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	notification.MarkQueued()

	payload, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Headers:   p.buildHeaders(notification),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish notification %s: %w", notification.ID, err)
	}

	p.logger.Info("📤 Notification published",
		"notification_id", notification.ID,
		"confirmation_id", notification.ConfirmationID,
		"type", notification.Type,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *kafkaProducer) buildHeaders(notification *EmailNotification) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{
			Key:   []byte("notification_type"),
			Value: []byte(notification.Type),
		},
		{
			Key:   []byte("notification_id"),
			Value: []byte(notification.ID.String()),
		},
		{
			Key:   []byte("source"),
			Value: []byte("selvatours-api"),
		},
	}
}

func (p *kafkaProducer) HealthCheck(ctx context.Context) error {
	// SyncProducer keeps broker connections alive; a closed producer is the
	// only failure mode visible without sending a message.
	if p.producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	p.logger.Info("✅ Kafka producer closed")
	return nil
}
