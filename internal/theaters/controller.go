package theaters

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinetix/internal/shared/utils/response"
)

type Controller interface {
	CreateTheater(c *gin.Context)
	GetTheater(c *gin.Context)
	UpdateTheater(c *gin.Context)
	DeleteTheater(c *gin.Context)
	GetAllTheaters(c *gin.Context)
	CheckCapacityReduction(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateTheater(c *gin.Context) {
	var req CreateTheaterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	theater, err := ctrl.service.CreateTheater(req)
	if err != nil {
		response.RespondError(c, "Failed to create theater", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Theater created successfully", theater, nil)
}

func (ctrl *controller) GetTheater(c *gin.Context) {
	theaterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid theater ID", nil, err.Error())
		return
	}

	theater, err := ctrl.service.GetTheaterByID(theaterID)
	if err != nil {
		response.RespondError(c, "Failed to get theater", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Theater retrieved successfully", theater, nil)
}

func (ctrl *controller) UpdateTheater(c *gin.Context) {
	theaterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid theater ID", nil, err.Error())
		return
	}

	var req UpdateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	theater, err := ctrl.service.UpdateTheater(theaterID, req)
	if err != nil {
		response.RespondError(c, "Failed to update theater", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Theater updated successfully", theater, nil)
}

func (ctrl *controller) DeleteTheater(c *gin.Context) {
	theaterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid theater ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteTheater(theaterID); err != nil {
		response.RespondError(c, "Failed to delete theater", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Theater deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllTheaters(c *gin.Context) {
	var query TheaterListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	theaters, err := ctrl.service.GetAllTheaters(query)
	if err != nil {
		response.RespondError(c, "Failed to get theaters", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Theaters retrieved successfully", theaters, nil)
}

// CheckCapacityReduction handles GET /admin/theaters/:id/capacity-check?proposed=N
func (ctrl *controller) CheckCapacityReduction(c *gin.Context) {
	theaterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid theater ID", nil, err.Error())
		return
	}

	proposed, err := strconv.Atoi(c.Query("proposed"))
	if err != nil || proposed < 1 {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid proposed capacity", nil, nil)
		return
	}

	check, err := ctrl.service.CapacityReductionAllowed(theaterID, proposed)
	if err != nil {
		response.RespondError(c, "Failed to check capacity reduction", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Capacity check completed", check, nil)
}
