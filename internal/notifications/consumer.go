package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// EventConsumer drains the tickets topic and turns committed sales into
// customer emails. Delivery is at-least-once: a message is only marked
// consumed after the mail went out, so a crash mid-send re-delivers.
type EventConsumer interface {
	StartWorkers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "cinetix-confirmation-workers",
		Topics:               []string{"cinetix.tickets"},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    5 * time.Minute,
		AutoCommit:           true,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type KafkaTicketEventConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	emailService  EmailService
	topics        []string
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewKafkaTicketEventConsumer(config *ConsumerConfig, emailService EmailService) (EventConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaTicketEventConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		emailService:  emailService,
		topics:        config.Topics,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (c *KafkaTicketEventConsumer) StartWorkers(ctx context.Context, numWorkers int) error {
	log.Printf("📥 Starting %d confirmation workers for topics: %v", numWorkers, c.topics)

	go c.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			c.runWorker(ctx, workerID)
		}(i)
	}

	log.Printf("📥 All %d confirmation workers started", numWorkers)
	return nil
}

func (c *KafkaTicketEventConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &ticketEventHandler{
		consumer:     c,
		workerID:     workerID,
		emailService: c.emailService,
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("📥 Worker %d shutting down", workerID)
			return
		default:
			err := c.consumerGroup.Consume(ctx, c.topics, handler)
			if err != nil {
				log.Printf("📥 Worker %d error consuming messages: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *KafkaTicketEventConsumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

func (c *KafkaTicketEventConsumer) Stop() error {
	log.Println("📥 Stopping confirmation consumer...")
	c.cancel()

	err := c.consumerGroup.Close()
	if err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	log.Println("📥 Confirmation consumer stopped")
	return nil
}

func (c *KafkaTicketEventConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-c.ctx.Done():
		return fmt.Errorf("consumer context is cancelled")
	default:
		if c.emailService == nil {
			return fmt.Errorf("email service not configured")
		}
		return nil
	}
}

// inboundEnvelope mirrors Envelope but defers payload decoding until the
// event type is known.
type inboundEnvelope struct {
	ID         uuid.UUID       `json:"id"`
	Type       EventType       `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	ShowtimeID uuid.UUID       `json:"showtime_id"`
	Payload    json.RawMessage `json:"payload"`
}

type ticketEventHandler struct {
	consumer     *KafkaTicketEventConsumer
	workerID     int
	emailService EmailService
}

func (h *ticketEventHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session started", h.workerID)
	return nil
}

func (h *ticketEventHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d: Consumer group session ended", h.workerID)
	return nil
}

func (h *ticketEventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			err := h.processMessage(session.Context(), message)
			if err != nil {
				log.Printf("📥 Worker %d: Error processing message: %v", h.workerID, err)
			} else {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *ticketEventHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	log.Printf("📥 Worker %d: Processing event from topic %s, partition %d, offset %d",
		h.workerID, message.Topic, message.Partition, message.Offset)

	var envelope inboundEnvelope
	if err := json.Unmarshal(message.Value, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}

	// Only ticket lifecycle events carry a customer to mail
	if envelope.Type != EventTicketPurchased && envelope.Type != EventTicketCancelled {
		return nil
	}

	var ticket TicketEventPayload
	if err := json.Unmarshal(envelope.Payload, &ticket); err != nil {
		return fmt.Errorf("failed to unmarshal ticket payload: %w", err)
	}

	err := h.executeWithRetry(ctx, envelope.Type, ticket)
	if err != nil {
		return err
	}

	log.Printf("📧 Worker %d: %s email sent to %s", h.workerID, envelope.Type, ticket.CustomerEmail)
	return nil
}

func (h *ticketEventHandler) executeWithRetry(ctx context.Context, eventType EventType, ticket TicketEventPayload) error {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoffDuration

	for attempt := 0; attempt <= maxRetries; attempt++ {
		var err error
		switch eventType {
		case EventTicketPurchased:
			err = h.emailService.SendTicketConfirmation(ctx, ticket)
		case EventTicketCancelled:
			err = h.emailService.SendCancellationReceipt(ctx, ticket)
		}
		if err == nil {
			if attempt > 0 {
				log.Printf("📥 Worker %d: Delivered after %d retries", h.workerID, attempt)
			}
			return nil
		}

		if attempt == maxRetries {
			log.Printf("📥 Worker %d: Giving up after %d attempts: %v", h.workerID, maxRetries, err)
			return err
		}

		// Exponential backoff
		delay := backoff * time.Duration(1<<attempt)
		log.Printf("📥 Worker %d: Retry %d after %v", h.workerID, attempt+1, delay)

		select {
		case <-time.After(delay):
			continue
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}
