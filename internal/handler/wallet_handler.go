package handler

import (
	"errors"
	"net/http"

	"metro-ticketing/internal/model"
	"metro-ticketing/internal/service"
	apperrors "metro-ticketing/pkg/app_errors"
	"metro-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WalletHandler struct {
	service service.WalletService
}

func NewWalletHandler(service service.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

func (h *WalletHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("wallet", h.GetBalance)
		router.POST("wallet/topup", h.TopUp)
		router.GET("wallet/transactions", h.GetTransactions)
	}
}

func (h *WalletHandler) GetBalance(c *gin.Context) {
	passengerID, ok := PassengerID(c)
	if !ok {
		return
	}

	balance, err := h.service.Balance(c, passengerID)
	if err != nil {
		h.handleWalletError(c, err, "GetBalance")
		return
	}

	c.JSON(http.StatusOK, balance)
}

func (h *WalletHandler) TopUp(c *gin.Context) {
	passengerID, ok := PassengerID(c)
	if !ok {
		return
	}

	var req model.TopUpRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	transaction, err := h.service.TopUp(c, passengerID, req.Amount)
	if err != nil {
		h.handleWalletError(c, err, "TopUp")
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func (h *WalletHandler) GetTransactions(c *gin.Context) {
	passengerID, ok := PassengerID(c)
	if !ok {
		return
	}

	transactions, err := h.service.Transactions(c, passengerID)
	if err != nil {
		h.handleWalletError(c, err, "GetTransactions")
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func (h *WalletHandler) handleWalletError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrPassengerNotFound):
		log.Warn("Passenger not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Passenger not found",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid amount")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Amount must be positive",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
