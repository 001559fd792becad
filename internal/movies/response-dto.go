package movies

import "time"

type MovieResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Rating          string    `json:"rating"`
	Genre           string    `json:"genre"`
	ReleaseYear     int       `json:"release_year"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PaginatedMovies struct {
	Movies     []MovieResponse `json:"movies"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// ToResponse converts a Movie to its API shape
func (m *Movie) ToResponse() MovieResponse {
	return MovieResponse{
		ID:              m.ID.String(),
		Title:           m.Title,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		Rating:          m.Rating,
		Genre:           m.Genre,
		ReleaseYear:     m.ReleaseYear,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
