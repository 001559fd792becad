package movies

type CreateMovieRequest struct {
	Title           string `json:"title" binding:"required,min=1,max=255"`
	Description     string `json:"description" binding:"max=2000"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=600"`
	Rating          string `json:"rating" binding:"omitempty,max=10"`
	Genre           string `json:"genre" binding:"omitempty,max=100"`
	ReleaseYear     int    `json:"release_year" binding:"omitempty,min=1888,max=2100"`
}

type UpdateMovieRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1,max=600"`
	Rating          *string `json:"rating" binding:"omitempty,max=10"`
	Genre           *string `json:"genre" binding:"omitempty,max=100"`
	ReleaseYear     *int    `json:"release_year" binding:"omitempty,min=1888,max=2100"`
	IsActive        *bool   `json:"is_active"`
}

type MovieListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Genre  string `form:"genre"`
	Active string `form:"active" binding:"omitempty,oneof=true false"`
}
