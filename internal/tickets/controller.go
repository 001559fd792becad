package tickets

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinetix/internal/shared/utils/response"
)

type Controller interface {
	PurchaseTicket(c *gin.Context)
	CancelTicket(c *gin.Context)
	GetTicket(c *gin.Context)
	GetTicketsByEmail(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) PurchaseTicket(c *gin.Context) {
	var req PurchaseTicketRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.PurchaseTicket(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, "Failed to purchase ticket", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Ticket purchased successfully", ticket, nil)
}

func (ctrl *controller) CancelTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.CancelTicket(c.Request.Context(), ticketID)
	if err != nil {
		response.RespondError(c, "Failed to cancel ticket", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Ticket cancelled successfully", ticket, nil)
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.GetTicketByID(ticketID)
	if err != nil {
		response.RespondError(c, "Failed to get ticket", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

func (ctrl *controller) GetTicketsByEmail(c *gin.Context) {
	var query TicketListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	tickets, err := ctrl.service.GetTicketsByEmail(query)
	if err != nil {
		response.RespondError(c, "Failed to get tickets", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Tickets retrieved successfully", tickets, nil)
}
