package handler

import (
	"errors"
	"net/http"

	"metro-ticketing/internal/service"
	apperrors "metro-ticketing/pkg/app_errors"
	"metro-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("tickets", h.GetTickets)
		router.GET("tickets/:id", h.GetTicket)
		router.GET("tickets/:id/scans", h.GetTicketScans)
	}
}

func (h *TicketHandler) GetTickets(c *gin.Context) {
	passengerID, ok := PassengerID(c)
	if !ok {
		return
	}

	tickets, err := h.service.ListForPassenger(c, passengerID)
	if err != nil {
		h.handleTicketError(c, err, "GetTickets")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	passengerID, ok := PassengerID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.handleTicketError(c, apperrors.ErrTicketNotFound, "GetTicket")
		return
	}

	ticket, err := h.service.GetForPassenger(c, passengerID, ticketID)
	if err != nil {
		h.handleTicketError(c, err, "GetTicket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) GetTicketScans(c *gin.Context) {
	passengerID, ok := PassengerID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.handleTicketError(c, apperrors.ErrTicketNotFound, "GetTicketScans")
		return
	}

	// 先確認這張票屬於呼叫者
	if _, err := h.service.GetForPassenger(c, passengerID, ticketID); err != nil {
		h.handleTicketError(c, err, "GetTicketScans")
		return
	}

	scans, err := h.service.ListScans(c, ticketID)
	if err != nil {
		h.handleTicketError(c, err, "GetTicketScans")
		return
	}

	c.JSON(http.StatusOK, scans)
}

func (h *TicketHandler) handleTicketError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ticket not found",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
