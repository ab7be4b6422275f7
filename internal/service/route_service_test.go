package service

import (
	"context"
	"errors"
	"testing"

	"metro-ticketing/internal/mocks"
	"metro-ticketing/internal/model"
	"metro-ticketing/internal/routing"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouteService() (*RouteServiceImpl, *mocks.StationRepositoryMock, *mocks.ConnectionRepositoryMock, *mocks.GraphCacheMock) {
	stationRepo := mocks.NewStationRepositoryMock()
	connRepo := mocks.NewConnectionRepositoryMock()
	graphCache := mocks.NewGraphCacheMock()
	svc := &RouteServiceImpl{
		stationRepo: stationRepo,
		connRepo:    connRepo,
		graphCache:  graphCache,
		ratePerEdge: decimal.RequireFromString("5.00"),
	}
	return svc, stationRepo, connRepo, graphCache
}

func testSnapshot() *routing.NetworkSnapshot {
	return &routing.NetworkSnapshot{
		Stations: []routing.StationNode{
			{Code: "A", Name: "Alpha"},
			{Code: "B", Name: "Bravo"},
			{Code: "C", Name: "Charlie"},
		},
		Links: []routing.Link{
			{FromCode: "A", ToCode: "B", LineCode: "L1", LineName: "Line One"},
			{FromCode: "B", ToCode: "C", LineCode: "L2", LineName: "Line Two"},
		},
	}
}

func TestRouteService_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - cache hit", func(t *testing.T) {
		svc, stationRepo, _, graphCache := setupRouteService()

		graphCache.On("Get", mock.Anything, true).Return(testSnapshot(), nil).Once()

		quote, err := svc.Quote(ctx, "A", "C", true)

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, quote.Path)
		assert.Equal(t, "A-B-C", quote.PathRepr)
		assert.True(t, quote.Price.Equal(decimal.RequireFromString("10.00")))
		assert.Equal(t, []string{"Line One", "Line Two"}, quote.LinesUsed)
		stationRepo.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("Success - cache miss rebuilds from db and backfills", func(t *testing.T) {
		svc, stationRepo, connRepo, graphCache := setupRouteService()

		graphCache.On("Get", mock.Anything, true).Return(nil, nil).Once()
		stationRepo.On("List", mock.Anything).Return([]*model.Station{
			{ID: 1, Code: "A", Name: "Alpha"},
			{ID: 2, Code: "B", Name: "Bravo"},
			{ID: 3, Code: "C", Name: "Charlie"},
		}, nil).Once()
		connRepo.On("List", mock.Anything, true).Return([]*model.Connection{
			{FromStationCode: "A", ToStationCode: "B", LineCode: "L1", LineName: "Line One"},
			{FromStationCode: "B", ToStationCode: "C", LineCode: "L2", LineName: "Line Two"},
		}, nil).Once()
		graphCache.On("Set", mock.Anything, true, mock.AnythingOfType("*routing.NetworkSnapshot")).Return(nil).Once()

		quote, err := svc.Quote(ctx, "A", "C", true)

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, quote.Path)
		graphCache.AssertExpectations(t)
	})

	t.Run("Success - cache read failure degrades to db", func(t *testing.T) {
		svc, stationRepo, connRepo, graphCache := setupRouteService()

		graphCache.On("Get", mock.Anything, true).Return(nil, errors.New("redis down")).Once()
		stationRepo.On("List", mock.Anything).Return([]*model.Station{
			{ID: 1, Code: "A"}, {ID: 2, Code: "B"},
		}, nil).Once()
		connRepo.On("List", mock.Anything, true).Return([]*model.Connection{
			{FromStationCode: "A", ToStationCode: "B", LineCode: "L1", LineName: "Line One"},
		}, nil).Once()
		graphCache.On("Set", mock.Anything, true, mock.Anything).Return(errors.New("redis down")).Once()

		quote, err := svc.Quote(ctx, "A", "B", true)

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, quote.Path)
	})

	t.Run("Failed - ErrSameStationPair without touching cache", func(t *testing.T) {
		svc, _, _, graphCache := setupRouteService()

		_, err := svc.Quote(ctx, "A", "A", true)

		assert.ErrorIs(t, err, apperrors.ErrSameStationPair)
		graphCache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Failed - ErrNoPath for disconnected stations", func(t *testing.T) {
		svc, _, _, graphCache := setupRouteService()

		snap := testSnapshot()
		snap.Stations = append(snap.Stations, routing.StationNode{Code: "D", Name: "Delta"})
		graphCache.On("Get", mock.Anything, true).Return(snap, nil).Once()

		_, err := svc.Quote(ctx, "A", "D", true)

		assert.ErrorIs(t, err, apperrors.ErrNoPath)
	})
}
