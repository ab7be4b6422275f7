package handler

import (
	"errors"
	"net/http"

	"metro-ticketing/internal/service"
	apperrors "metro-ticketing/pkg/app_errors"
	"metro-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	service service.RouteService
}

func NewQuoteHandler(service service.RouteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

func (h *QuoteHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("quotes", h.GetQuote)
	}
}

type quoteQuery struct {
	Source      string `form:"source" binding:"required"`
	Destination string `form:"destination" binding:"required"`
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	var query quoteQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	quote, err := h.service.Quote(c, query.Source, query.Destination, true)
	if err != nil {
		h.handleQuoteError(c, err, "GetQuote")
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *QuoteHandler) handleQuoteError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
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
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
