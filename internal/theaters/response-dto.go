package theaters

import "time"

type TheaterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaginatedTheaters struct {
	Theaters   []TheaterResponse `json:"theaters"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type CapacityCheckResponse struct {
	TheaterID        string `json:"theater_id"`
	CurrentCapacity  int    `json:"current_capacity"`
	ProposedCapacity int    `json:"proposed_capacity"`
	Allowed          bool   `json:"allowed"`
}

// ToResponse converts a Theater to its API shape
func (t *Theater) ToResponse() TheaterResponse {
	return TheaterResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Location:  t.Location,
		Capacity:  t.Capacity,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
