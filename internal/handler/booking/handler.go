package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doctorsportal/booking-api/internal/handler"
	"github.com/doctorsportal/booking-api/internal/middleware"
	"github.com/doctorsportal/booking-api/internal/model"
	bookingService "github.com/doctorsportal/booking-api/internal/service/booking"
)

type Handler struct {
	service *bookingService.Service
}

func NewHandler(service *bookingService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	status := http.StatusOK
	if resp.Success {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

func (h *Handler) ListBookings(c *gin.Context) {
	callerEmail := c.GetString(middleware.ContextUserEmail)

	bookings, err := h.service.List(c.Request.Context(), callerEmail)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(bookings))
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date is required"))
		return
	}

	services, err := h.service.Availability(c.Request.Context(), date)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	rg.POST("/booking", h.CreateBooking)
	rg.GET("/booking", auth.Authenticate(), h.ListBookings)
	rg.GET("/available", h.GetAvailability)

	// Legacy clients call this with GET as well as DELETE.
	rg.GET("/delete-booking/:id", h.DeleteBooking)
	rg.DELETE("/delete-booking/:id", h.DeleteBooking)
}
