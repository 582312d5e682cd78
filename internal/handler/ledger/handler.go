package ledger

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doctorsportal/booking-api/internal/handler"
	"github.com/doctorsportal/booking-api/internal/middleware"
	"github.com/doctorsportal/booking-api/internal/model"
	ledgerService "github.com/doctorsportal/booking-api/internal/service/ledger"
)

type Handler struct {
	service *ledgerService.Service
}

func NewHandler(service *ledgerService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AddToken(c *gin.Context) {
	var req model.AddTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	token, err := h.service.AddToken(c.Request.Context(), req.Price)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(token))
}

func (h *Handler) BuyToken(c *gin.Context) {
	var req model.BuyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	userToken, err := h.service.BuyToken(c.Request.Context(), req.Email, req.Price)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(userToken))
}

func (h *Handler) GetPrices(c *gin.Context) {
	prices, err := h.service.Prices(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prices))
}

func (h *Handler) ListUserTokens(c *gin.Context) {
	userTokens, err := h.service.UserTokens(c.Request.Context(), c.Param("email"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(userTokens))
}

func (h *Handler) ListTokens(c *gin.Context) {
	tokens, err := h.service.Tokens(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) DeleteToken(c *gin.Context) {
	if err := h.service.DeleteToken(c.Request.Context(), c.Param("id")); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RechargeWallet(c *gin.Context) {
	var req model.RechargeWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	wallet, err := h.service.Recharge(c.Request.Context(), req.Token)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(wallet))
}

func (h *Handler) GetWallet(c *gin.Context) {
	wallet, err := h.service.Wallet(c.Request.Context(), c.Param("email"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(wallet))
}

func (h *Handler) Pay(c *gin.Context) {
	var req model.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	booking, err := h.service.Pay(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(booking))
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	rg.POST("/add-token", auth.Authenticate(), auth.RequireAdmin(), h.AddToken)
	rg.POST("/buy-token", h.BuyToken)
	rg.POST("/get-price", h.GetPrices)
	rg.GET("/get-user-token/:email", h.ListUserTokens)
	rg.GET("/get-token", auth.Authenticate(), auth.RequireAdmin(), h.ListTokens)
	rg.DELETE("/delete-token/:id", auth.Authenticate(), auth.RequireAdmin(), h.DeleteToken)

	// Path spelling is part of the published interface.
	rg.POST("/recharge-walet", h.RechargeWallet)
	rg.GET("/get-walet/:email", h.GetWallet)

	rg.POST("/payment", auth.Authenticate(), h.Pay)
}
