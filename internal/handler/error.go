package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/doctorsportal/booking-api/pkg/errors"
)

// Error writes a service error as JSON, honoring the status carried
// by application errors. The error is also attached to the context so
// the error middleware logs it with the request metadata.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
}
