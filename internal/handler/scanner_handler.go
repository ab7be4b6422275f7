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

// ScannerHandler 站務員閘門操作：掃描與離線開票
type ScannerHandler struct {
	service service.TicketService
}

func NewScannerHandler(service service.TicketService) *ScannerHandler {
	return &ScannerHandler{service: service}
}

func (h *ScannerHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("scans", h.Scan)
		router.POST("offline-tickets", h.IssueOfflineTicket)
	}
}

func (h *ScannerHandler) Scan(c *gin.Context) {
	operatorID, ok := OperatorID(c)
	if !ok {
		return
	}

	var req model.ScanRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Scan(c, req, operatorID)
	if err != nil {
		h.handleScanError(c, result, err, "Scan")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ScannerHandler) IssueOfflineTicket(c *gin.Context) {
	operatorID, ok := OperatorID(c)
	if !ok {
		return
	}

	var req model.OfflineTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.service.IssueOfflineTicket(c, req, operatorID)
	if err != nil {
		h.handleScanError(c, nil, err, "IssueOfflineTicket")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// handleScanError 掃描被拒時把 ScanResult（含預期/實際說明）一併回給閘門端
func (h *ScannerHandler) handleScanError(c *gin.Context, result *model.ScanResult, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	denied := func(status int, fallback string) {
		if result != nil {
			c.JSON(status, gin.H{"error": result.Message, "result": result})
			return
		}
		c.JSON(status, gin.H{"error": fallback})
	}

	switch {
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ticket not found",
		})
	case errors.Is(err, apperrors.ErrStationNotFound):
		log.Warn("Station not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Station not found",
		})
	case errors.Is(err, apperrors.ErrTicketTerminalState):
		log.Warn("Ticket in terminal state")
		denied(http.StatusConflict, "Ticket is in a terminal state")
	case errors.Is(err, apperrors.ErrWrongState):
		log.Warn("Wrong ticket state")
		denied(http.StatusConflict, "Ticket in wrong state for scan")
	case errors.Is(err, apperrors.ErrWrongStation):
		log.Warn("Wrong station")
		denied(http.StatusConflict, "Scan at wrong station")
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
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
