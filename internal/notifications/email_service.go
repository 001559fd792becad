package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strconv"
	"time"
)

// EmailService delivers ticket confirmations and cancellation receipts.
type EmailService interface {
	SendTicketConfirmation(ctx context.Context, ticket TicketEventPayload) error
	SendCancellationReceipt(ctx context.Context, ticket TicketEventPayload) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// NewSMTPConfigFromEnv creates SMTP config from environment variables
func NewSMTPConfigFromEnv() *SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	timeout, _ := time.ParseDuration(os.Getenv("SMTP_TIMEOUT"))
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &SMTPConfig{
		Host:      os.Getenv("SMTP_HOST"),
		Port:      port,
		Username:  os.Getenv("SMTP_USERNAME"),
		Password:  os.Getenv("SMTP_PASSWORD"),
		FromEmail: os.Getenv("FROM_EMAIL"),
		FromName:  "Cinetix",
		UseTLS:    true,
		Timeout:   timeout,
	}
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config *SMTPConfig
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}

	return &SMTPEmailService{config: config}, nil
}

// validateSMTPConfig validates SMTP configuration
func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}

	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}

	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}

	if config.Password == "" {
		return fmt.Errorf("SMTP password is required")
	}

	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}

	return nil
}

// SendTicketConfirmation mails the customer their purchased seat
func (s *SMTPEmailService) SendTicketConfirmation(ctx context.Context, ticket TicketEventPayload) error {
	log.Printf("📧 [SMTP] Sending purchase confirmation to %s (seat %s)",
		ticket.CustomerEmail, ticket.SeatNumber)

	subject := fmt.Sprintf("Your ticket for seat %s is confirmed", ticket.SeatNumber)

	htmlBody := fmt.Sprintf(`
		<h2>✅ Ticket Confirmed</h2>
		<p>Hi %s,</p>
		<p>Your seat <strong>%s</strong> is booked.</p>
		<p>Ticket Number: <strong>%s</strong></p>
		<p>Amount Paid: $%.2f</p>
		<p>Show this email at the entrance.</p>
		<p>Enjoy the movie,<br>Cinetix Team</p>
	`,
		ticket.CustomerName,
		ticket.SeatNumber,
		ticket.TicketID,
		ticket.Price,
	)

	textBody := fmt.Sprintf(
		"Hi %s,\n\nYour seat %s is booked.\nTicket Number: %s\nAmount Paid: $%.2f\n\nShow this email at the entrance.\n\nEnjoy the movie,\nCinetix Team",
		ticket.CustomerName,
		ticket.SeatNumber,
		ticket.TicketID,
		ticket.Price,
	)

	return s.SendHTML(ctx, ticket.CustomerEmail, subject, htmlBody, textBody)
}

// SendCancellationReceipt mails the customer that their seat was released
func (s *SMTPEmailService) SendCancellationReceipt(ctx context.Context, ticket TicketEventPayload) error {
	log.Printf("📧 [SMTP] Sending cancellation receipt to %s (seat %s)",
		ticket.CustomerEmail, ticket.SeatNumber)

	subject := fmt.Sprintf("Your ticket for seat %s was cancelled", ticket.SeatNumber)

	htmlBody := fmt.Sprintf(`
		<h2>Ticket Cancelled</h2>
		<p>Hi %s,</p>
		<p>Your ticket for seat <strong>%s</strong> has been cancelled.</p>
		<p>Ticket Number: <strong>%s</strong></p>
		<p>Refund Amount: $%.2f</p>
		<p>Best regards,<br>Cinetix Team</p>
	`,
		ticket.CustomerName,
		ticket.SeatNumber,
		ticket.TicketID,
		ticket.Price,
	)

	textBody := fmt.Sprintf(
		"Hi %s,\n\nYour ticket for seat %s has been cancelled.\nTicket Number: %s\nRefund Amount: $%.2f\n\nBest regards,\nCinetix Team",
		ticket.CustomerName,
		ticket.SeatNumber,
		ticket.TicketID,
		ticket.Price,
	)

	return s.SendHTML(ctx, ticket.CustomerEmail, subject, htmlBody, textBody)
}

// SendHTML sends an HTML email
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 [SMTP] Email sent successfully to %s", to)
	return nil
}

// sendWithSTARTTLS sends email with STARTTLS encryption
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	_, err = w.Write(message)
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

// buildMessage creates the email message with proper headers
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

// MockEmailService logs instead of sending. Used when SMTP is not
// configured and in tests.
type MockEmailService struct{}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendTicketConfirmation(ctx context.Context, ticket TicketEventPayload) error {
	log.Printf("📧 [MOCK] Purchase confirmation to %s for seat %s", ticket.CustomerEmail, ticket.SeatNumber)
	return nil
}

func (s *MockEmailService) SendCancellationReceipt(ctx context.Context, ticket TicketEventPayload) error {
	log.Printf("📧 [MOCK] Cancellation receipt to %s for seat %s", ticket.CustomerEmail, ticket.SeatNumber)
	return nil
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [MOCK] To: %s, Subject: %s", to, subject)
	return nil
}
