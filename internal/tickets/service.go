package tickets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"cinetix/internal/notifications"
	"cinetix/internal/shared/apperrors"
	"cinetix/internal/shared/validation"
	"cinetix/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	// Service dependency injection
	SetEventProducer(producer notifications.Producer)
	PurchaseTicket(ctx context.Context, req PurchaseTicketRequest) (*TicketResponse, error)
	CancelTicket(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error)
	GetTicketByID(id uuid.UUID) (*TicketResponse, error)
	GetTicketsByEmail(query TicketListQuery) (*PaginatedTickets, error)
}

type service struct {
	repo     Repository
	log      *logger.Logger
	producer notifications.Producer
	now      func() time.Time
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) SetEventProducer(producer notifications.Producer) {
	s.producer = producer
}

func (s *service) PurchaseTicket(ctx context.Context, req PurchaseTicketRequest) (*TicketResponse, error) {
	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID: %w", err)
	}

	// "a-1 " and "A-1" are the same seat
	seat := validation.NormalizeSeat(req.SeatNumber)
	if !validation.ValidSeatNumber(seat) {
		return nil, apperrors.ErrInvalidSeatFormat
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if !validation.ValidEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}

	name := strings.TrimSpace(req.CustomerName)

	ticket, err := s.repo.Purchase(ctx, showtimeID, seat, name, email, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("showtime", showtimeID.String())
		}
		if code := apperrors.Code(err); code != "INTERNAL" {
			s.log.LogPurchaseRejected(ctx, showtimeID.String(), seat, code)
		}
		return nil, err
	}

	s.log.LogTicketPurchased(ctx, ticket.ID.String(), ticket.ShowtimeID.String(), ticket.SeatNumber)
	s.publishTicketEvent(ctx, notifications.EventTicketPurchased, ticket)

	response := ticket.ToResponse()
	return &response, nil
}

func (s *service) CancelTicket(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.repo.Cancel(ctx, ticketID, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("ticket", ticketID.String())
		}
		return nil, err
	}

	s.log.LogTicketCancelled(ctx, ticket.ID.String(), ticket.ShowtimeID.String(), ticket.SeatNumber)
	s.publishTicketEvent(ctx, notifications.EventTicketCancelled, ticket)

	response := ticket.ToResponse()
	return &response, nil
}

func (s *service) GetTicketByID(id uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("ticket", id.String())
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	response := ticket.ToResponse()
	return &response, nil
}

func (s *service) GetTicketsByEmail(query TicketListQuery) (*PaginatedTickets, error) {
	query.Email = strings.TrimSpace(query.Email)
	if !validation.ValidEmail(query.Email) {
		return nil, apperrors.ErrInvalidEmail
	}

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	results, totalCount, err := s.repo.GetByEmail(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}

	responses := make([]TicketResponse, len(results))
	for i, ticket := range results {
		responses[i] = ticket.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedTickets{
		Tickets:    responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) publishTicketEvent(ctx context.Context, eventType notifications.EventType, ticket *Ticket) {
	if s.producer == nil {
		return
	}

	payload := notifications.TicketEventPayload{
		TicketID:      ticket.ID,
		ShowtimeID:    ticket.ShowtimeID,
		SeatNumber:    ticket.SeatNumber,
		CustomerName:  ticket.CustomerName,
		CustomerEmail: ticket.CustomerEmail,
		Price:         ticket.Price,
		Status:        ticket.Status.String(),
	}

	if err := s.producer.PublishTicketEvent(ctx, eventType, payload); err != nil {
		// A committed sale stays sold even when the bus is down
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
