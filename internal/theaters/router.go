package theaters

import (
	"github.com/gin-gonic/gin"
)

func SetupTheaterRoutes(rg *gin.RouterGroup, controller Controller) {
	theaters := rg.Group("/theaters")
	{
		theaters.GET("", controller.GetAllTheaters)
		theaters.GET("/:id", controller.GetTheater)
	}

	admin := rg.Group("/admin/theaters")
	{
		admin.POST("", controller.CreateTheater)
		admin.PUT("/:id", controller.UpdateTheater)
		admin.DELETE("/:id", controller.DeleteTheater)
		admin.GET("/:id/capacity-check", controller.CheckCapacityReduction)
	}
}
