package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doctorsportal/booking-api/internal/handler"
	"github.com/doctorsportal/booking-api/internal/middleware"
	"github.com/doctorsportal/booking-api/internal/model"
	accountService "github.com/doctorsportal/booking-api/internal/service/account"
)

type Handler struct {
	service *accountService.Service
}

func NewHandler(service *accountService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) UpsertUser(c *gin.Context) {
	var req model.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), c.Param("email"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) CheckAdmin(c *gin.Context) {
	isAdmin, err := h.service.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, model.AdminCheckResponse{Admin: isAdmin})
}

func (h *Handler) PromoteUser(c *gin.Context) {
	if err := h.service.Promote(c.Request.Context(), c.Param("email")); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(users))
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	rg.GET("/user", auth.Authenticate(), h.ListUsers)
	rg.PUT("/user/:email", h.UpsertUser)
	rg.PUT("/user/admin/:email", auth.Authenticate(), auth.RequireAdmin(), h.PromoteUser)
	rg.GET("/admin/:email", h.CheckAdmin)
}
