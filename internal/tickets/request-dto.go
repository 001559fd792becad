package tickets

// PurchaseTicketRequest carries no price and no end time; the price is
// snapshotted from the showtime inside the purchase transaction.
type PurchaseTicketRequest struct {
	ShowtimeID    string `json:"showtime_id" binding:"required,uuid"`
	SeatNumber    string `json:"seat_number" binding:"required,seatnumber"`
	CustomerName  string `json:"customer_name" binding:"required,max=255"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

type TicketListQuery struct {
	Email string `form:"email" binding:"required,email"`
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
