package theaters

type CreateTheaterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Location string `json:"location" binding:"omitempty,max=255"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=2000"`
}

type UpdateTheaterRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Location *string `json:"location" binding:"omitempty,max=255"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1,max=2000"`
	IsActive *bool   `json:"is_active"`
}

type TheaterListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Active string `form:"active" binding:"omitempty,oneof=true false"`
}
