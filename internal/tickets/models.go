package tickets

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is one seat sold for one showtime. Price is a snapshot of the
// showtime's price at purchase time; later price changes never touch
// sold tickets. The partial unique index on (showtime_id, seat_number)
// WHERE status = 'PURCHASED' backs the in-transaction seat check, and
// leaves cancelled rows free to be bought again.
type Ticket struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ShowtimeID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"showtime_id"`
	SeatNumber    string     `gorm:"type:varchar(10);not null" json:"seat_number"`
	CustomerName  string     `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string     `gorm:"type:varchar(255);index;not null" json:"customer_email"`
	Price         float64    `gorm:"not null" json:"price"`
	Status        Status     `gorm:"type:varchar(20);check:status IN ('PURCHASED', 'CANCELLED', 'RESERVED');default:'PURCHASED'" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}

func (t *Ticket) IsPurchased() bool {
	return t.Status == StatusPurchased
}

func (t *Ticket) IsCancelled() bool {
	return t.Status == StatusCancelled
}
