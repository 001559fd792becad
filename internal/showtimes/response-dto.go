package showtimes

import "time"

type ShowtimeResponse struct {
	ID          string    `json:"id"`
	MovieID     string    `json:"movie_id"`
	TheaterID   string    `json:"theater_id"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Price       float64   `json:"price"`
	SoldTickets int       `json:"sold_tickets"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated from the movie and theater services when available
	Movie   *MovieResponse   `json:"movie,omitempty"`
	Theater *TheaterResponse `json:"theater,omitempty"`
}

type PaginatedShowtimes struct {
	Showtimes  []ShowtimeResponse `json:"showtimes"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// AvailabilityResponse is a point-in-time projection read without locks.
// A concurrent purchase can make it stale the moment it is produced; the
// purchase path re-checks everything under the row lock.
type AvailabilityResponse struct {
	ShowtimeID string `json:"showtime_id"`
	Capacity   int    `json:"capacity"`
	Sold       int    `json:"sold"`
	Available  int    `json:"available"`
	SoldOut    bool   `json:"sold_out"`
}

type OccupiedSeatsResponse struct {
	ShowtimeID string   `json:"showtime_id"`
	Seats      []string `json:"seats"`
}

// ToResponse converts a Showtime to its API shape
func (s *Showtime) ToResponse() ShowtimeResponse {
	return ShowtimeResponse{
		ID:          s.ID.String(),
		MovieID:     s.MovieID.String(),
		TheaterID:   s.TheaterID.String(),
		StartsAt:    s.StartsAt,
		EndsAt:      s.EndsAt,
		Price:       s.Price,
		SoldTickets: s.SoldTickets,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
