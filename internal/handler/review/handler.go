package review

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doctorsportal/booking-api/internal/handler"
	"github.com/doctorsportal/booking-api/internal/middleware"
	"github.com/doctorsportal/booking-api/internal/model"
	reviewService "github.com/doctorsportal/booking-api/internal/service/review"
)

type Handler struct {
	service *reviewService.Service
}

func NewHandler(service *reviewService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateReview(c *gin.Context) {
	var review model.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.Create(c.Request.Context(), &review); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(true))
}

func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(reviews))
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, _ *middleware.AuthMiddleware) {
	rg.POST("/postReview", h.CreateReview)
	rg.GET("/getReview", h.ListReviews)
}
