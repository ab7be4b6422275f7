package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"metro-ticketing/internal/mocks"
	"metro-ticketing/internal/model"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupPurchaseTestRouter(mockService *mocks.PurchaseServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewPurchaseHandler(mockService).RegisterRoutes(router)
	return router
}

func TestRequestPurchase(t *testing.T) {
	purchaseRequest := model.PurchaseRequest{SourceCode: "A", DestinationCode: "C"}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("RequestPurchase", mock.Anything, 1, purchaseRequest).Return(&model.PurchaseResponse{
			Quote: model.Quote{
				SourceCode:      "A",
				DestinationCode: "C",
				Path:            []string{"A", "B", "C"},
				PathRepr:        "A-B-C",
				Price:           decimal.RequireFromString("10.00"),
			},
			ExpiresAt: time.Now().Add(5 * time.Minute),
		}, nil).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "A-B-C")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - missing identity header", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "RequestPurchase", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - ErrInsufficientBalance", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("RequestPurchase", mock.Anything, 1, purchaseRequest).Return(nil, apperrors.ErrInsufficientBalance).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Failed - ErrNoEnabledLines", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("RequestPurchase", mock.Anything, 1, purchaseRequest).Return(nil, apperrors.ErrNoEnabledLines).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Failed - ErrEmailRequired", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("RequestPurchase", mock.Anything, 1, purchaseRequest).Return(nil, apperrors.ErrEmailRequired).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVerifyPurchase(t *testing.T) {
	verifyRequest := model.VerifyRequest{Code: "123456"}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		passengerID := 1
		mockService.On("Verify", mock.Anything, 1, "123456").Return(&model.Ticket{
			PassengerID: &passengerID,
			Status:      model.TicketStatusActive,
		}, nil).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases/verify", verifyRequest), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "ACTIVE")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - code must be six digits", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases/verify", model.VerifyRequest{Code: "123"}), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - ErrAuthorizationExpired maps to 410", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Verify", mock.Anything, 1, "123456").Return(nil, apperrors.ErrAuthorizationExpired).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases/verify", verifyRequest), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusGone, w.Code)
	})

	t.Run("Failed - ErrCodeMismatch", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Verify", mock.Anything, 1, "123456").Return(nil, apperrors.ErrCodeMismatch).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases/verify", verifyRequest), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - ErrNoAuthorization", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Verify", mock.Anything, 1, "123456").Return(nil, apperrors.ErrNoAuthorization).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases/verify", verifyRequest), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - ErrAuthorizationAlreadyUsed", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Verify", mock.Anything, 1, "123456").Return(nil, apperrors.ErrAuthorizationAlreadyUsed).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases/verify", verifyRequest), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestResendOTP(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Resend", mock.Anything, 1).Return(&model.PurchaseResponse{
			ExpiresAt: time.Now().Add(5 * time.Minute),
		}, nil).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases/resend", nil), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - nothing pending", func(t *testing.T) {
		mockService := mocks.NewPurchaseServiceMock()
		router := setupPurchaseTestRouter(mockService)

		mockService.On("Resend", mock.Anything, 1).Return(nil, apperrors.ErrNoAuthorization).Once()

		req := asPassenger(createJSONHTTPRequest("POST", "/api/v1/purchases/resend", nil), 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
