package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/doctorsportal/booking-api/internal/handler"
	apperrors "github.com/doctorsportal/booking-api/pkg/errors"
)

func TestErrorHandlerRespondsWhenHandlerDidNot(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(apperrors.NotFound("wallet", nil))
		c.Abort()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "wallet not found")
}

func TestErrorHandlerKeepsHandlerResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) {
		handler.Error(c, apperrors.Conflict("already exists", nil))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))

	// The handler wrote the envelope; the middleware only logs.
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
	assert.Contains(t, w.Body.String(), "already exists")
	assert.NotContains(t, w.Body.String(), "trace_id")
}
