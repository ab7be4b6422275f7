package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"metro-ticketing/internal/mocks"
	"metro-ticketing/internal/model"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupQuoteTestRouter(mockService *mocks.RouteServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewQuoteHandler(mockService).RegisterRoutes(router)
	return router
}

func TestGetQuote(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewRouteServiceMock()
		router := setupQuoteTestRouter(mockService)

		mockService.On("Quote", mock.Anything, "A", "C", true).Return(&model.Quote{
			SourceCode:      "A",
			DestinationCode: "C",
			Path:            []string{"A", "B", "C"},
			PathRepr:        "A-B-C",
			Price:           decimal.RequireFromString("10.00"),
			LinesUsed:       []string{"Line One", "Line Two"},
		}, nil).Once()

		req, _ := http.NewRequest("GET", "/api/v1/quotes?source=A&destination=C", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "A-B-C")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - missing query params", func(t *testing.T) {
		mockService := mocks.NewRouteServiceMock()
		router := setupQuoteTestRouter(mockService)

		req, _ := http.NewRequest("GET", "/api/v1/quotes?source=A", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - ErrSameStationPair", func(t *testing.T) {
		mockService := mocks.NewRouteServiceMock()
		router := setupQuoteTestRouter(mockService)

		mockService.On("Quote", mock.Anything, "A", "A", true).Return(nil, apperrors.ErrSameStationPair).Once()

		req, _ := http.NewRequest("GET", "/api/v1/quotes?source=A&destination=A", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - ErrNoPath", func(t *testing.T) {
		mockService := mocks.NewRouteServiceMock()
		router := setupQuoteTestRouter(mockService)

		mockService.On("Quote", mock.Anything, "A", "Z", true).Return(nil, apperrors.ErrNoPath).Once()

		req, _ := http.NewRequest("GET", "/api/v1/quotes?source=A&destination=Z", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
