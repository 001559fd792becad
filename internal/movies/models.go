package movies

import (
	"time"

	"github.com/google/uuid"
)

// Movie is the catalog entry showtimes are scheduled against. Duration is
// the authoritative input for deriving a showtime's end time.
type Movie struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string    `gorm:"not null;size:255" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	DurationMinutes int       `gorm:"not null;check:duration_minutes > 0" json:"duration_minutes"`
	Rating          string    `gorm:"type:varchar(10)" json:"rating"`
	Genre           string    `gorm:"size:100;index" json:"genre"`
	ReleaseYear     int       `json:"release_year"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Movie) TableName() string {
	return "movies"
}

// Duration returns the running time as a time.Duration
func (m *Movie) Duration() time.Duration {
	return time.Duration(m.DurationMinutes) * time.Minute
}
