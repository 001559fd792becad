package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Producer publishes domain lifecycle events to the message bus.
// Publishing happens after the database commit and never blocks or
// fails the request that triggered it.
type Producer interface {
	PublishTicketEvent(ctx context.Context, eventType EventType, payload TicketEventPayload) error
	PublishShowtimeEvent(ctx context.Context, eventType EventType, payload ShowtimeEventPayload) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka event producer
type KafkaProducerConfig struct {
	Brokers          []string
	TicketsTopic     string
	ShowtimesTopic   string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		TicketsTopic:     "cinetix.tickets",
		ShowtimesTopic:   "cinetix.showtimes",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaEventProducer publishes events to Kafka. A nil inner producer
// means publishing is disabled and every publish is a no-op.
type KafkaEventProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaEventProducer creates a new Kafka event producer, or a
// disabled no-op producer when no brokers are configured.
func NewKafkaEventProducer(config *KafkaProducerConfig) (Producer, error) {
	if len(config.Brokers) == 0 {
		log.Printf("📪 Kafka event producer disabled (no brokers configured)")
		return &KafkaEventProducer{config: config}, nil
	}

	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one showtime's events on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka event producer created successfully")
	return &KafkaEventProducer{producer: producer, config: config}, nil
}

// PublishTicketEvent publishes a purchase or cancellation to the tickets topic
func (kep *KafkaEventProducer) PublishTicketEvent(ctx context.Context, eventType EventType, payload TicketEventPayload) error {
	return kep.publish(kep.config.TicketsTopic, eventType, payload.ShowtimeID, payload)
}

// PublishShowtimeEvent publishes a schedule change to the showtimes topic
func (kep *KafkaEventProducer) PublishShowtimeEvent(ctx context.Context, eventType EventType, payload ShowtimeEventPayload) error {
	return kep.publish(kep.config.ShowtimesTopic, eventType, payload.ShowtimeID, payload)
}

func (kep *KafkaEventProducer) publish(topic string, eventType EventType, showtimeID uuid.UUID, payload interface{}) error {
	if kep.producer == nil {
		return nil
	}

	envelope := &Envelope{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		ShowtimeID: showtimeID,
		Payload:    payload,
	}

	messageBytes, err := envelope.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(envelope.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kep.createHeaders(envelope),
		Timestamp: envelope.OccurredAt,
	}

	partition, offset, err := kep.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send event to Kafka: %w", err)
	}

	log.Printf("📤 Event published to Kafka - Topic: %s, Partition: %d, Offset: %d, Type: %s, Showtime: %s",
		topic, partition, offset, envelope.Type, envelope.ShowtimeID)

	return nil
}

// createHeaders creates Kafka headers for events
func (kep *KafkaEventProducer) createHeaders(envelope *Envelope) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(envelope.ID.String())},
		{Key: []byte("event_type"), Value: []byte(envelope.Type)},
		{Key: []byte("showtime_id"), Value: []byte(envelope.ShowtimeID.String())},
		{Key: []byte("occurred_at"), Value: []byte(envelope.OccurredAt.Format(time.RFC3339))},
		{Key: []byte("producer"), Value: []byte("cinetix-booking")},
		{Key: []byte("version"), Value: []byte("1.0")},
	}
}

// Close closes the Kafka producer
func (kep *KafkaEventProducer) Close() error {
	if kep.producer != nil {
		err := kep.producer.Close()
		if err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka event producer closed")
	}
	return nil
}

// HealthCheck performs a health check on the Kafka producer
func (kep *KafkaEventProducer) HealthCheck(ctx context.Context) error {
	// A disabled producer is always healthy
	if kep.producer == nil {
		return nil
	}

	if kep.config.TicketsTopic == "" || kep.config.ShowtimesTopic == "" {
		return fmt.Errorf("health check failed - topics not configured")
	}

	return nil
}
