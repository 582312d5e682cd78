package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doctorsportal/booking-api/internal/handler"
	"github.com/doctorsportal/booking-api/internal/middleware"
	"github.com/doctorsportal/booking-api/internal/model"
	doctorService "github.com/doctorsportal/booking-api/internal/service/doctor"
)

type Handler struct {
	service *doctorService.Service
}

func NewHandler(service *doctorService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("email")); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	rg.GET("/doctor", auth.Authenticate(), h.ListDoctors)
	rg.POST("/doctor", auth.Authenticate(), auth.RequireAdmin(), h.CreateDoctor)
	rg.DELETE("/doctor/:email", auth.Authenticate(), auth.RequireAdmin(), h.DeleteDoctor)
}
