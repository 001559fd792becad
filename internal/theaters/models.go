package theaters

import (
	"time"

	"github.com/google/uuid"
)

// Theater is an auditorium with a fixed seat capacity. Capacity is the hard
// ceiling the ticket sales transaction enforces per showtime.
type Theater struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Location  string    `gorm:"size:255" json:"location"`
	Capacity  int       `gorm:"not null;check:capacity > 0" json:"capacity"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Theater) TableName() string {
	return "theaters"
}
