package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doctorsportal/booking-api/internal/handler"
	"github.com/doctorsportal/booking-api/internal/middleware"
	"github.com/doctorsportal/booking-api/internal/model"
	catalogService "github.com/doctorsportal/booking-api/internal/service/catalog"
)

type Handler struct {
	service *catalogService.Service
}

func NewHandler(service *catalogService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateService(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	service, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(service))
}

func (h *Handler) ListServices(c *gin.Context) {
	names, err := h.service.ListNames(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(names))
}

func (h *Handler) ListServicesByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date is required"))
		return
	}

	services, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	rg.GET("/service", h.ListServices)
	rg.POST("/service", h.CreateService)
	rg.GET("/service/all", auth.Authenticate(), auth.RequireAdmin(), h.ListServicesByDate)
}
