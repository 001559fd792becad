package showtimes

import "time"

type CreateShowtimeRequest struct {
	MovieID   string    `json:"movie_id" binding:"required,uuid"`
	TheaterID string    `json:"theater_id" binding:"required,uuid"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	Price     float64   `json:"price" binding:"required,gt=0"`
}

// UpdateShowtimeRequest never carries an end time. Rescheduling any of
// movie, theater or start recomputes the end from the movie's running
// time and re-runs the overlap check.
type UpdateShowtimeRequest struct {
	MovieID   *string    `json:"movie_id,omitempty" binding:"omitempty,uuid"`
	TheaterID *string    `json:"theater_id,omitempty" binding:"omitempty,uuid"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	Price     *float64   `json:"price,omitempty" binding:"omitempty,gt=0"`
}

type ShowtimeListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	MovieID   string `form:"movie_id" binding:"omitempty,uuid"`
	TheaterID string `form:"theater_id" binding:"omitempty,uuid"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	Upcoming  bool   `form:"upcoming"`
}
