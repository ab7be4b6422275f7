package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"metro-ticketing/internal/mocks"
	"metro-ticketing/internal/model"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupScannerTestRouter(mockService *mocks.TicketServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewScannerHandler(mockService).RegisterRoutes(router)
	return router
}

func TestScan(t *testing.T) {
	ticketID := uuid.New()
	scanRequest := model.ScanRequest{
		TicketID:    ticketID.String(),
		StationCode: "A",
		Direction:   model.ScanDirectionEntry,
	}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupScannerTestRouter(mockService)

		mockService.On("Scan", mock.Anything, scanRequest, 42).Return(&model.ScanResult{
			TicketID: ticketID,
			Status:   model.TicketStatusInUse,
			Accepted: true,
			Message:  "Entry scan successful. Ticket is now IN_USE.",
		}, nil).Once()

		req := asOperator(createJSONHTTPRequest("POST", "/api/v1/scans", scanRequest), 42)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "IN_USE")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - missing operator header", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupScannerTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/scans", scanRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Denied - wrong station returns the scan result", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupScannerTestRouter(mockService)

		mockService.On("Scan", mock.Anything, scanRequest, 42).Return(&model.ScanResult{
			TicketID: ticketID,
			Status:   model.TicketStatusActive,
			Accepted: false,
			Message:  "ENTRY denied at A. Ticket source is B.",
		}, apperrors.ErrWrongStation).Once()

		req := asOperator(createJSONHTTPRequest("POST", "/api/v1/scans", scanRequest), 42)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		// 拒絕原因要回給閘門端顯示
		assert.Contains(t, w.Body.String(), "Ticket source is B")
	})

	t.Run("Denied - terminal state", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupScannerTestRouter(mockService)

		mockService.On("Scan", mock.Anything, scanRequest, 42).Return(&model.ScanResult{
			TicketID: ticketID,
			Status:   model.TicketStatusUsed,
			Accepted: false,
			Message:  "Cannot scan. Ticket status is USED.",
		}, apperrors.ErrTicketTerminalState).Once()

		req := asOperator(createJSONHTTPRequest("POST", "/api/v1/scans", scanRequest), 42)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Failed - unknown ticket", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupScannerTestRouter(mockService)

		mockService.On("Scan", mock.Anything, scanRequest, 42).Return(nil, apperrors.ErrTicketNotFound).Once()

		req := asOperator(createJSONHTTPRequest("POST", "/api/v1/scans", scanRequest), 42)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestIssueOfflineTicket(t *testing.T) {
	offlineRequest := model.OfflineTicketRequest{SourceCode: "A", DestinationCode: "C"}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupScannerTestRouter(mockService)

		mockService.On("IssueOfflineTicket", mock.Anything, offlineRequest, 42).Return(&model.Ticket{
			ID:     uuid.New(),
			Status: model.TicketStatusUsed,
		}, nil).Once()

		req := asOperator(createJSONHTTPRequest("POST", "/api/v1/offline-tickets", offlineRequest), 42)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "USED")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - no path", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupScannerTestRouter(mockService)

		mockService.On("IssueOfflineTicket", mock.Anything, offlineRequest, 42).Return(nil, apperrors.ErrNoPath).Once()

		req := asOperator(createJSONHTTPRequest("POST", "/api/v1/offline-tickets", offlineRequest), 42)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
