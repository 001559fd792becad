package response

import (
	"github.com/gin-gonic/gin"

	"cinetix/internal/shared/apperrors"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a domain error onto the standard envelope. The machine
// code lets clients distinguish retryable contention from terminal rejections.
func RespondError(c *gin.Context, message string, err error) {
	status := apperrors.HTTPStatus(err)
	c.JSON(status, StandardApiResponse{
		Status:     StatusError,
		StatusCode: status,
		Message:    message,
		Errors: gin.H{
			"code":      apperrors.Code(err),
			"details":   err.Error(),
			"retryable": apperrors.IsRetryable(err),
		},
	})
}
