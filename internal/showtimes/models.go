package showtimes

import (
	"time"

	"github.com/google/uuid"

	"cinetix/internal/movies"
	"cinetix/internal/theaters"
)

// Aliases for cross-package response embedding
type MovieResponse = movies.MovieResponse
type TheaterResponse = theaters.TheaterResponse

// Showtime is a single screening of a movie in a theater. EndsAt is
// always derived from the movie's running time and is never taken from
// a request. SoldTickets counts tickets currently in PURCHASED state
// and is only changed under a row lock by the ticket sales path.
type Showtime struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MovieID     uuid.UUID `gorm:"type:uuid;index;not null" json:"movie_id"`
	TheaterID   uuid.UUID `gorm:"type:uuid;index;not null" json:"theater_id"`
	StartsAt    time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time `gorm:"not null" json:"ends_at"`
	Price       float64   `gorm:"not null" json:"price"`
	SoldTickets int       `gorm:"not null;default:0" json:"sold_tickets"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for Showtime
func (Showtime) TableName() string {
	return "showtimes"
}

// HasStarted reports whether the screening has begun at the given instant.
func (s *Showtime) HasStarted(now time.Time) bool {
	return !s.StartsAt.After(now)
}

// Overlaps reports whether [s.StartsAt, s.EndsAt) intersects [start, end).
// Intervals are half-open, so back-to-back screenings that share a
// boundary instant do not overlap.
func (s *Showtime) Overlaps(start, end time.Time) bool {
	return s.StartsAt.Before(end) && start.Before(s.EndsAt)
}
