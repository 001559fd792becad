package movies

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinetix/internal/shared/utils/response"
)

type Controller interface {
	CreateMovie(c *gin.Context)
	GetMovie(c *gin.Context)
	UpdateMovie(c *gin.Context)
	DeleteMovie(c *gin.Context)
	GetAllMovies(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateMovie(c *gin.Context) {
	var req CreateMovieRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := ctrl.service.CreateMovie(req)
	if err != nil {
		response.RespondError(c, "Failed to create movie", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Movie created successfully", movie, nil)
}

func (ctrl *controller) GetMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	movie, err := ctrl.service.GetMovieByID(movieID)
	if err != nil {
		response.RespondError(c, "Failed to get movie", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Movie retrieved successfully", movie, nil)
}

func (ctrl *controller) UpdateMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := ctrl.service.UpdateMovie(movieID, req)
	if err != nil {
		response.RespondError(c, "Failed to update movie", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Movie updated successfully", movie, nil)
}

func (ctrl *controller) DeleteMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteMovie(movieID); err != nil {
		response.RespondError(c, "Failed to delete movie", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Movie deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllMovies(c *gin.Context) {
	var query MovieListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	movies, err := ctrl.service.GetAllMovies(query)
	if err != nil {
		response.RespondError(c, "Failed to get movies", err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Movies retrieved successfully", movies, nil)
}
