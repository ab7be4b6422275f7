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

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(service service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

func (h *PurchaseHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("purchases", h.RequestPurchase)
		router.POST("purchases/verify", h.VerifyPurchase)
		router.POST("purchases/resend", h.ResendOTP)
	}
}

func (h *PurchaseHandler) RequestPurchase(c *gin.Context) {
	passengerID, ok := PassengerID(c)
	if !ok {
		return
	}

	var req model.PurchaseRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.RequestPurchase(c, passengerID, req)
	if err != nil {
		h.handlePurchaseError(c, err, "RequestPurchase")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PurchaseHandler) VerifyPurchase(c *gin.Context) {
	passengerID, ok := PassengerID(c)
	if !ok {
		return
	}

	var req model.VerifyRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.service.Verify(c, passengerID, req.Code)
	if err != nil {
		h.handlePurchaseError(c, err, "VerifyPurchase")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func (h *PurchaseHandler) ResendOTP(c *gin.Context) {
	passengerID, ok := PassengerID(c)
	if !ok {
		return
	}

	resp, err := h.service.Resend(c, passengerID)
	if err != nil {
		h.handlePurchaseError(c, err, "ResendOTP")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Helper functions

func (h *PurchaseHandler) handlePurchaseError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrPassengerNotFound):
		log.Warn("Passenger not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Passenger not found",
		})
	case errors.Is(err, apperrors.ErrEmailRequired):
		log.Warn("Email required")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "You must add an email to receive the OTP",
		})
	case errors.Is(err, apperrors.ErrNoEnabledLines):
		log.Warn("No enabled lines")
		c.JSON(http.StatusConflict, gin.H{
			"error": "No active metro line is available for ticket purchase at the moment",
		})
	case errors.Is(err, apperrors.ErrSameStationPair):
		log.Warn("Same station pair")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Source and destination cannot be the same",
		})
	case errors.Is(err, apperrors.ErrNoPath):
		log.Warn("No path found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No path found between selected stations",
		})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		log.Warn("Insufficient balance")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Insufficient balance",
		})
	case errors.Is(err, apperrors.ErrNoAuthorization):
		log.Warn("No authorization")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No valid OTP found. Please start purchase again",
		})
	case errors.Is(err, apperrors.ErrAuthorizationExpired):
		log.Warn("Authorization expired")
		c.JSON(http.StatusGone, gin.H{
			"error": "Your OTP expired. A new OTP has been sent to your email",
		})
	case errors.Is(err, apperrors.ErrAuthorizationAlreadyUsed):
		log.Warn("Authorization already used")
		c.JSON(http.StatusConflict, gin.H{
			"error": "OTP already used",
		})
	case errors.Is(err, apperrors.ErrCodeMismatch):
		log.Warn("Code mismatch")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid OTP",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
