package notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ConfirmationService runs the Kafka consumer that mails customers after a
// purchase or cancellation commits. It is an optional sidecar inside the API
// process; the booking flow never waits on it.
type ConfirmationService interface {
	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ServiceConfig struct {
	KafkaBrokers       []string
	TicketsTopic       string
	ConsumerGroupID    string
	NumConsumerWorkers int
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPFromEmail      string
}

func NewServiceConfigFromEnv() *ServiceConfig {
	return &ServiceConfig{
		KafkaBrokers:       splitBrokers(getEnvString("KAFKA_BROKERS", "")),
		TicketsTopic:       getEnvString("KAFKA_TICKETS_TOPIC", "cinetix.tickets"),
		ConsumerGroupID:    getEnvString("CONSUMER_GROUP_ID", "cinetix-confirmation-workers"),
		NumConsumerWorkers: getEnvInt("NUM_CONSUMER_WORKERS", 3),
		SMTPHost:           getEnvString("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUsername:       getEnvString("SMTP_USERNAME", ""),
		SMTPPassword:       getEnvString("SMTP_PASSWORD", ""),
		SMTPFromEmail:      getEnvString("FROM_EMAIL", ""),
	}
}

type confirmationService struct {
	config       *ServiceConfig
	consumer     EventConsumer
	emailService EmailService

	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewConfirmationService wires the consumer and the mailer. With no Kafka
// brokers configured there is nothing to consume, so it errors and the
// caller runs without confirmations. Without SMTP settings it falls back to
// the logging mailer so local setups still show the flow.
func NewConfirmationService(config *ServiceConfig) (ConfirmationService, error) {
	if config == nil {
		config = NewServiceConfigFromEnv()
	}

	if len(config.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("no Kafka brokers configured")
	}

	var emailService EmailService
	if config.SMTPHost == "" {
		log.Println("📧 SMTP not configured, confirmation emails will only be logged")
		emailService = NewMockEmailService()
	} else {
		smtpConfig := &SMTPConfig{
			Host:      config.SMTPHost,
			Port:      config.SMTPPort,
			Username:  config.SMTPUsername,
			Password:  config.SMTPPassword,
			FromEmail: config.SMTPFromEmail,
			FromName:  "Cinetix",
			UseTLS:    true,
		}
		smtpService, err := NewSMTPEmailService(smtpConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create SMTP email service: %w", err)
		}
		emailService = smtpService
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = config.KafkaBrokers
	consumerConfig.Topics = []string{config.TicketsTopic}
	consumerConfig.GroupID = config.ConsumerGroupID

	consumer, err := NewKafkaTicketEventConsumer(consumerConfig, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket event consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Printf("📧 Confirmation service initialized (topic: %s, group: %s)",
		config.TicketsTopic, config.ConsumerGroupID)

	return &confirmationService{
		config:       config,
		consumer:     consumer,
		emailService: emailService,
		isRunning:    false,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func (cs *confirmationService) Start(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.isRunning {
		return fmt.Errorf("confirmation service is already running")
	}

	log.Printf("🚀 Starting confirmation service...")

	err := cs.consumer.StartWorkers(cs.ctx, cs.config.NumConsumerWorkers)
	if err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}

	cs.isRunning = true
	log.Printf("✅ Confirmation service started")

	return nil
}

func (cs *confirmationService) Stop() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.isRunning {
		return fmt.Errorf("confirmation service is not running")
	}

	log.Printf("🛑 Stopping confirmation service...")

	cs.cancel()

	if err := cs.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}

	cs.isRunning = false
	log.Printf("✅ Confirmation service stopped")

	return nil
}

func (cs *confirmationService) HealthCheck(ctx context.Context) error {
	cs.mu.RLock()
	isRunning := cs.isRunning
	cs.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("confirmation service is not running")
	}

	if err := cs.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}

	return nil
}

// Helper functions for environment variables
func getEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func splitBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	var brokers []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
