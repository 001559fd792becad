package tickets

import (
	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(rg *gin.RouterGroup, controller Controller) {
	tickets := rg.Group("/tickets")
	{
		tickets.POST("", controller.PurchaseTicket)
		tickets.GET("", controller.GetTicketsByEmail)
		tickets.GET("/:id", controller.GetTicket)
		tickets.POST("/:id/cancel", controller.CancelTicket)
	}
}
