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

type StationHandler struct {
	service service.StationService
}

func NewStationHandler(service service.StationService) *StationHandler {
	return &StationHandler{service: service}
}

func (h *StationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("stations", h.GetStations)
		router.POST("stations", h.CreateStation)
		router.GET("lines", h.GetLines)
		router.PUT("lines/:code/enabled", h.SetLineEnabled)
		router.POST("connections", h.CreateConnection)
	}
}

func (h *StationHandler) GetStations(c *gin.Context) {
	stations, err := h.service.ListStations(c)
	if err != nil {
		h.handleStationError(c, err, "GetStations")
		return
	}

	c.JSON(http.StatusOK, stations)
}

type createStationRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (h *StationHandler) CreateStation(c *gin.Context) {
	var req createStationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	station, err := h.service.CreateStation(c, &model.Station{Code: req.Code, Name: req.Name})
	if err != nil {
		h.handleStationError(c, err, "CreateStation")
		return
	}

	c.JSON(http.StatusCreated, station)
}

func (h *StationHandler) GetLines(c *gin.Context) {
	lines, err := h.service.ListLines(c)
	if err != nil {
		h.handleStationError(c, err, "GetLines")
		return
	}

	c.JSON(http.StatusOK, lines)
}

func (h *StationHandler) SetLineEnabled(c *gin.Context) {
	var req model.SetLineEnabledRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	line, err := h.service.SetLineEnabled(c, c.Param("code"), *req.Enabled)
	if err != nil {
		h.handleStationError(c, err, "SetLineEnabled")
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *StationHandler) CreateConnection(c *gin.Context) {
	var req model.CreateConnectionRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	conn, err := h.service.CreateConnection(c, req)
	if err != nil {
		h.handleStationError(c, err, "CreateConnection")
		return
	}

	c.JSON(http.StatusCreated, conn)
}

func (h *StationHandler) handleStationError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrStationNotFound):
		log.Warn("Station not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Station not found",
		})
	case errors.Is(err, apperrors.ErrLineNotFound):
		log.Warn("Line not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Line not found",
		})
	case errors.Is(err, apperrors.ErrSameStationPair):
		log.Warn("Same station pair")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A connection must join two distinct stations",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
