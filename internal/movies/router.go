package movies

import (
	"github.com/gin-gonic/gin"
)

func SetupMovieRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse the catalog
	publicMovies := router.Group("/movies")
	{
		publicMovies.GET("", controller.GetAllMovies)
		publicMovies.GET("/:id", controller.GetMovie)
	}

	// Admin routes - catalog management
	adminMovies := router.Group("/admin/movies")
	{
		adminMovies.POST("", controller.CreateMovie)
		adminMovies.PUT("/:id", controller.UpdateMovie)
		adminMovies.DELETE("/:id", controller.DeleteMovie)
	}
}
