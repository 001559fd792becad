package tickets

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinetix/internal/notifications"
	"cinetix/internal/shared/apperrors"
	"cinetix/pkg/logger"
)

// stubRepo records the arguments the service hands down and serves a
// canned outcome per call.
type stubRepo struct {
	purchaseShowtimeID uuid.UUID
	purchaseSeat       string
	purchaseName       string
	purchaseEmail      string
	purchaseNow        time.Time
	purchaseCalls      int
	purchaseTicket     *Ticket
	purchaseErr        error

	cancelID     uuid.UUID
	cancelNow    time.Time
	cancelTicket *Ticket
	cancelErr    error

	byID map[uuid.UUID]*Ticket

	listResults []Ticket
	listTotal   int64
	lastQuery   TicketListQuery
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[uuid.UUID]*Ticket)}
}

func (r *stubRepo) Purchase(ctx context.Context, showtimeID uuid.UUID, seatNumber, customerName, customerEmail string, now time.Time) (*Ticket, error) {
	r.purchaseCalls++
	r.purchaseShowtimeID = showtimeID
	r.purchaseSeat = seatNumber
	r.purchaseName = customerName
	r.purchaseEmail = customerEmail
	r.purchaseNow = now
	return r.purchaseTicket, r.purchaseErr
}

func (r *stubRepo) Cancel(ctx context.Context, ticketID uuid.UUID, now time.Time) (*Ticket, error) {
	r.cancelID = ticketID
	r.cancelNow = now
	return r.cancelTicket, r.cancelErr
}

func (r *stubRepo) GetByID(id uuid.UUID) (*Ticket, error) {
	ticket, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ticket, nil
}

func (r *stubRepo) GetByEmail(query TicketListQuery) ([]Ticket, int64, error) {
	r.lastQuery = query
	return r.listResults, r.listTotal, nil
}

type capturingProducer struct {
	events   []notifications.EventType
	payloads []notifications.TicketEventPayload
	err      error
}

func (p *capturingProducer) PublishTicketEvent(ctx context.Context, eventType notifications.EventType, payload notifications.TicketEventPayload) error {
	p.events = append(p.events, eventType)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func (p *capturingProducer) PublishShowtimeEvent(ctx context.Context, eventType notifications.EventType, payload notifications.ShowtimeEventPayload) error {
	return p.err
}

func (p *capturingProducer) HealthCheck(ctx context.Context) error { return nil }
func (p *capturingProducer) Close() error                          { return nil }

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestService(repo *stubRepo) (*service, *capturingProducer) {
	svc := NewService(repo, logger.New()).(*service)
	svc.now = func() time.Time { return testNow }
	producer := &capturingProducer{}
	svc.SetEventProducer(producer)
	return svc, producer
}

func soldTicket(showtimeID uuid.UUID) *Ticket {
	return &Ticket{
		ID:            uuid.New(),
		ShowtimeID:    showtimeID,
		SeatNumber:    "A-1",
		CustomerName:  "Dana Whitfield",
		CustomerEmail: "dana@example.com",
		Price:         14.50,
		Status:        StatusPurchased,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}
}

func TestPurchaseTicketNormalizesSeatAndTrimsInput(t *testing.T) {
	repo := newStubRepo()
	showtimeID := uuid.New()
	repo.purchaseTicket = soldTicket(showtimeID)
	svc, producer := newTestService(repo)

	resp, err := svc.PurchaseTicket(context.Background(), PurchaseTicketRequest{
		ShowtimeID:    showtimeID.String(),
		SeatNumber:    "  a-1 ",
		CustomerName:  "  Dana Whitfield ",
		CustomerEmail: " dana@example.com ",
	})

	require.NoError(t, err)
	assert.Equal(t, showtimeID, repo.purchaseShowtimeID)
	assert.Equal(t, "A-1", repo.purchaseSeat)
	assert.Equal(t, "Dana Whitfield", repo.purchaseName)
	assert.Equal(t, "dana@example.com", repo.purchaseEmail)
	assert.Equal(t, testNow, repo.purchaseNow)

	assert.Equal(t, "A-1", resp.SeatNumber)
	assert.Equal(t, StatusPurchased.String(), resp.Status)
	assert.Equal(t, 14.50, resp.Price)

	require.Len(t, producer.events, 1)
	assert.Equal(t, notifications.EventTicketPurchased, producer.events[0])
	assert.Equal(t, "dana@example.com", producer.payloads[0].CustomerEmail)
	assert.Equal(t, "Dana Whitfield", producer.payloads[0].CustomerName)
}

func TestPurchaseTicketRejectsBadInputBeforeTouchingStorage(t *testing.T) {
	tests := []struct {
		name    string
		seat    string
		email   string
		wantErr error
	}{
		{name: "three letter row", seat: "AAA-1", email: "a@b.com", wantErr: apperrors.ErrInvalidSeatFormat},
		{name: "four digit seat", seat: "A-1234", email: "a@b.com", wantErr: apperrors.ErrInvalidSeatFormat},
		{name: "missing dash", seat: "A1", email: "a@b.com", wantErr: apperrors.ErrInvalidSeatFormat},
		{name: "empty seat", seat: "", email: "a@b.com", wantErr: apperrors.ErrInvalidSeatFormat},
		{name: "email without domain", seat: "A-1", email: "dana@", wantErr: apperrors.ErrInvalidEmail},
		{name: "email without tld", seat: "A-1", email: "dana@example", wantErr: apperrors.ErrInvalidEmail},
		{name: "email without at sign", seat: "A-1", email: "dana.example.com", wantErr: apperrors.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			svc, producer := newTestService(repo)

			_, err := svc.PurchaseTicket(context.Background(), PurchaseTicketRequest{
				ShowtimeID:    uuid.New().String(),
				SeatNumber:    tt.seat,
				CustomerName:  "Dana Whitfield",
				CustomerEmail: tt.email,
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.purchaseCalls)
			assert.Empty(t, producer.events)
		})
	}
}

func TestPurchaseTicketRejectsMalformedShowtimeID(t *testing.T) {
	repo := newStubRepo()
	svc, _ := newTestService(repo)

	_, err := svc.PurchaseTicket(context.Background(), PurchaseTicketRequest{
		ShowtimeID:    "not-a-uuid",
		SeatNumber:    "A-1",
		CustomerName:  "Dana Whitfield",
		CustomerEmail: "dana@example.com",
	})

	require.Error(t, err)
	assert.Zero(t, repo.purchaseCalls)
}

func TestPurchaseTicketMapsMissingShowtimeToNotFound(t *testing.T) {
	repo := newStubRepo()
	repo.purchaseErr = gorm.ErrRecordNotFound
	svc, _ := newTestService(repo)

	_, err := svc.PurchaseTicket(context.Background(), PurchaseTicketRequest{
		ShowtimeID:    uuid.New().String(),
		SeatNumber:    "A-1",
		CustomerName:  "Dana Whitfield",
		CustomerEmail: "dana@example.com",
	})

	assert.True(t, apperrors.IsNotFound(err))
}

func TestPurchaseTicketPropagatesSaleRejections(t *testing.T) {
	rejections := []error{
		apperrors.ErrSoldOut,
		apperrors.ErrSeatTaken,
		apperrors.ErrPastOrOngoingShowtime,
		apperrors.ErrLockContention,
	}

	for _, rejection := range rejections {
		t.Run(apperrors.Code(rejection), func(t *testing.T) {
			repo := newStubRepo()
			repo.purchaseErr = rejection
			svc, producer := newTestService(repo)

			_, err := svc.PurchaseTicket(context.Background(), PurchaseTicketRequest{
				ShowtimeID:    uuid.New().String(),
				SeatNumber:    "A-1",
				CustomerName:  "Dana Whitfield",
				CustomerEmail: "dana@example.com",
			})

			assert.ErrorIs(t, err, rejection)
			assert.Empty(t, producer.events)
		})
	}
}

func TestPurchaseTicketWithoutProducerStillSells(t *testing.T) {
	repo := newStubRepo()
	showtimeID := uuid.New()
	repo.purchaseTicket = soldTicket(showtimeID)
	svc := NewService(repo, logger.New()).(*service)
	svc.now = func() time.Time { return testNow }

	resp, err := svc.PurchaseTicket(context.Background(), PurchaseTicketRequest{
		ShowtimeID:    showtimeID.String(),
		SeatNumber:    "A-1",
		CustomerName:  "Dana Whitfield",
		CustomerEmail: "dana@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "A-1", resp.SeatNumber)
}

func TestCancelTicket(t *testing.T) {
	t.Run("cancellation returns the cancelled ticket and publishes", func(t *testing.T) {
		repo := newStubRepo()
		showtimeID := uuid.New()
		cancelled := soldTicket(showtimeID)
		cancelled.Status = StatusCancelled
		cancelledAt := testNow
		cancelled.CancelledAt = &cancelledAt
		repo.cancelTicket = cancelled
		svc, producer := newTestService(repo)

		resp, err := svc.CancelTicket(context.Background(), cancelled.ID)

		require.NoError(t, err)
		assert.Equal(t, cancelled.ID, repo.cancelID)
		assert.Equal(t, testNow, repo.cancelNow)
		assert.Equal(t, StatusCancelled.String(), resp.Status)
		require.NotNil(t, resp.CancelledAt)

		require.Len(t, producer.events, 1)
		assert.Equal(t, notifications.EventTicketCancelled, producer.events[0])
	})

	t.Run("missing ticket maps to not found", func(t *testing.T) {
		repo := newStubRepo()
		repo.cancelErr = gorm.ErrRecordNotFound
		svc, _ := newTestService(repo)

		_, err := svc.CancelTicket(context.Background(), uuid.New())

		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("already cancelled ticket is rejected", func(t *testing.T) {
		repo := newStubRepo()
		repo.cancelErr = apperrors.ErrInvalidTicketState
		svc, producer := newTestService(repo)

		_, err := svc.CancelTicket(context.Background(), uuid.New())

		assert.ErrorIs(t, err, apperrors.ErrInvalidTicketState)
		assert.Empty(t, producer.events)
	})

	t.Run("started showtime blocks cancellation", func(t *testing.T) {
		repo := newStubRepo()
		repo.cancelErr = apperrors.ErrPastOrOngoingShowtime
		svc, _ := newTestService(repo)

		_, err := svc.CancelTicket(context.Background(), uuid.New())

		assert.ErrorIs(t, err, apperrors.ErrPastOrOngoingShowtime)
	})
}

func TestGetTicketByID(t *testing.T) {
	repo := newStubRepo()
	ticket := soldTicket(uuid.New())
	repo.byID[ticket.ID] = ticket
	svc, _ := newTestService(repo)

	resp, err := svc.GetTicketByID(ticket.ID)

	require.NoError(t, err)
	assert.Equal(t, ticket.ID.String(), resp.ID)
	assert.Equal(t, "Dana Whitfield", resp.CustomerName)

	_, err = svc.GetTicketByID(uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetTicketsByEmail(t *testing.T) {
	t.Run("invalid email rejected", func(t *testing.T) {
		svc, _ := newTestService(newStubRepo())

		_, err := svc.GetTicketsByEmail(TicketListQuery{Email: "not-an-email"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)
	})

	t.Run("defaults and total pages", func(t *testing.T) {
		repo := newStubRepo()
		repo.listResults = []Ticket{*soldTicket(uuid.New()), *soldTicket(uuid.New())}
		repo.listTotal = 21
		svc, _ := newTestService(repo)

		resp, err := svc.GetTicketsByEmail(TicketListQuery{Email: " dana@example.com "})

		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", repo.lastQuery.Email)
		assert.Equal(t, 1, repo.lastQuery.Page)
		assert.Equal(t, 10, repo.lastQuery.Limit)
		assert.Len(t, resp.Tickets, 2)
		assert.Equal(t, int64(21), resp.TotalCount)
		assert.Equal(t, 3, resp.TotalPages)
	})
}
