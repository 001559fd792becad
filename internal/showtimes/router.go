package showtimes

import (
	"github.com/gin-gonic/gin"
)

func SetupShowtimeRoutes(rg *gin.RouterGroup, controller Controller) {
	showtimes := rg.Group("/showtimes")
	{
		showtimes.GET("", controller.GetAllShowtimes)
		showtimes.GET("/:id", controller.GetShowtime)
		showtimes.GET("/:id/availability", controller.GetAvailability)
		showtimes.GET("/:id/seats", controller.GetOccupiedSeats)
	}

	admin := rg.Group("/admin/showtimes")
	{
		admin.POST("", controller.CreateShowtime)
		admin.PUT("/:id", controller.UpdateShowtime)
		admin.DELETE("/:id", controller.DeleteShowtime)
	}
}
