package showtimes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinetix/internal/shared/utils/response"
)

type Controller interface {
	CreateShowtime(c *gin.Context)
	GetShowtime(c *gin.Context)
	UpdateShowtime(c *gin.Context)
	DeleteShowtime(c *gin.Context)
	GetAllShowtimes(c *gin.Context)
	GetAvailability(c *gin.Context)
	GetOccupiedSeats(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateShowtime(c *gin.Context) {
	var req CreateShowtimeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.CreateShowtime(req)
	if err != nil {
		response.RespondError(c, "Failed to create showtime", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Showtime created successfully", showtime, nil)
}

func (ctrl *controller) GetShowtime(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.GetShowtimeByID(showtimeID)
	if err != nil {
		response.RespondError(c, "Failed to get showtime", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Showtime retrieved successfully", showtime, nil)
}

func (ctrl *controller) UpdateShowtime(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	var req UpdateShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.UpdateShowtime(showtimeID, req)
	if err != nil {
		response.RespondError(c, "Failed to update showtime", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Showtime updated successfully", showtime, nil)
}

func (ctrl *controller) DeleteShowtime(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteShowtime(showtimeID); err != nil {
		response.RespondError(c, "Failed to delete showtime", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Showtime deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllShowtimes(c *gin.Context) {
	var query ShowtimeListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	showtimes, err := ctrl.service.GetAllShowtimes(query)
	if err != nil {
		response.RespondError(c, "Failed to get showtimes", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Showtimes retrieved successfully", showtimes, nil)
}

func (ctrl *controller) GetAvailability(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	availability, err := ctrl.service.GetAvailability(showtimeID)
	if err != nil {
		response.RespondError(c, "Failed to get availability", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Availability retrieved successfully", availability, nil)
}

func (ctrl *controller) GetOccupiedSeats(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	seats, err := ctrl.service.GetOccupiedSeats(showtimeID)
	if err != nil {
		response.RespondError(c, "Failed to get occupied seats", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Occupied seats retrieved successfully", seats, nil)
}
