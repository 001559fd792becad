package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a domain lifecycle event on the bus.
type EventType string

const (
	EventTicketPurchased EventType = "ticket.purchased"
	EventTicketCancelled EventType = "ticket.cancelled"
	EventShowtimeCreated EventType = "showtime.created"
	EventShowtimeUpdated EventType = "showtime.updated"
	EventShowtimeDeleted EventType = "showtime.deleted"
)

// Envelope wraps every event published to the bus. Events for the same
// showtime share a partition key so downstream consumers see them in
// the order they were committed.
type Envelope struct {
	ID         uuid.UUID   `json:"id"`
	Type       EventType   `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	ShowtimeID uuid.UUID   `json:"showtime_id"`
	Payload    interface{} `json:"payload"`
}

// ToJSON serializes the envelope for the wire
func (e *Envelope) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events of one showtime to one partition
func (e *Envelope) GetPartitionKey() string {
	return e.ShowtimeID.String()
}

// TicketEventPayload describes a ticket purchase or cancellation.
type TicketEventPayload struct {
	TicketID      uuid.UUID `json:"ticket_id"`
	ShowtimeID    uuid.UUID `json:"showtime_id"`
	SeatNumber    string    `json:"seat_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
}

// ShowtimeEventPayload describes a schedule change.
type ShowtimeEventPayload struct {
	ShowtimeID uuid.UUID `json:"showtime_id"`
	MovieID    uuid.UUID `json:"movie_id"`
	TheaterID  uuid.UUID `json:"theater_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Price      float64   `json:"price"`
}
