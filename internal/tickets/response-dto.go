package tickets

import "time"

type TicketResponse struct {
	ID            string     `json:"id"`
	ShowtimeID    string     `json:"showtime_id"`
	SeatNumber    string     `json:"seat_number"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	Price         float64    `json:"price"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

type PaginatedTickets struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// ToResponse converts a Ticket to its API shape
func (t *Ticket) ToResponse() TicketResponse {
	return TicketResponse{
		ID:            t.ID.String(),
		ShowtimeID:    t.ShowtimeID.String(),
		SeatNumber:    t.SeatNumber,
		CustomerName:  t.CustomerName,
		CustomerEmail: t.CustomerEmail,
		Price:         t.Price,
		Status:        t.Status.String(),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		CancelledAt:   t.CancelledAt,
	}
}
