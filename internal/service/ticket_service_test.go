package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"metro-ticketing/internal/mocks"
	"metro-ticketing/internal/model"
	apperrors "metro-ticketing/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ticketMocks struct {
	repo        *mocks.TicketRepositoryMock
	scanRepo    *mocks.ScanRepositoryMock
	stationRepo *mocks.StationRepositoryMock
	routes      *mocks.RouteServiceMock
}

func setupTicketService() (*TicketServiceImpl, *ticketMocks) {
	m := &ticketMocks{
		repo:        mocks.NewTicketRepositoryMock(),
		scanRepo:    mocks.NewScanRepositoryMock(),
		stationRepo: mocks.NewStationRepositoryMock(),
		routes:      mocks.NewRouteServiceMock(),
	}
	svc := &TicketServiceImpl{
		tx:          mocks.NewTransactorStub(),
		repo:        m.repo,
		scanRepo:    m.scanRepo,
		stationRepo: m.stationRepo,
		routes:      m.routes,
		ticketTTL:   24 * time.Hour,
		now:         func() time.Time { return testNow },
	}
	return svc, m
}

func validTicket(status model.TicketStatus) *model.Ticket {
	passengerID := 1
	expiresAt := testNow.Add(time.Hour)
	return &model.Ticket{
		ID:            uuid.New(),
		PassengerID:   &passengerID,
		SourceID:      1,
		DestinationID: 3,
		SourceCode:    "A",
		DestCode:      "C",
		Price:         decimal.RequireFromString("10.00"),
		Status:        status,
		PathRepr:      "A-B-C",
		LinesUsed:     "Line One, Line Two",
		ExpiresAt:     &expiresAt,
	}
}

func TestTicketService_Scan(t *testing.T) {
	ctx := context.Background()
	sourceStation := &model.Station{ID: 1, Code: "A", Name: "Alpha"}
	destStation := &model.Station{ID: 3, Code: "C", Name: "Charlie"}
	otherStation := &model.Station{ID: 9, Code: "Z", Name: "Zulu"}

	t.Run("ENTRY accepted at source for ACTIVE ticket", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusActive)

		m.stationRepo.On("FindByCode", mock.Anything, "A").Return(sourceStation, nil).Once()
		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByIDWithLock", mock.Anything, ticket.ID).Return(ticket, nil).Once()
		m.repo.On("UpdateStatus", mock.Anything, ticket.ID, model.TicketStatusInUse).Return(nil).Once()
		m.scanRepo.On("Create", mock.Anything, mock.MatchedBy(func(scan *model.TicketScan) bool {
			return scan.TicketID == ticket.ID &&
				scan.Direction == model.ScanDirectionEntry &&
				scan.StationID != nil && *scan.StationID == sourceStation.ID &&
				scan.ScannedByID != nil && *scan.ScannedByID == 42
		})).Return(&model.TicketScan{}, nil).Once()

		result, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    ticket.ID.String(),
			StationCode: "A",
			Direction:   model.ScanDirectionEntry,
		}, 42)

		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, model.TicketStatusInUse, result.Status)
		m.repo.AssertExpectations(t)
		m.scanRepo.AssertExpectations(t)
	})

	t.Run("EXIT accepted at destination for IN_USE ticket", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusInUse)

		m.stationRepo.On("FindByCode", mock.Anything, "C").Return(destStation, nil).Once()
		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByIDWithLock", mock.Anything, ticket.ID).Return(ticket, nil).Once()
		m.repo.On("UpdateStatus", mock.Anything, ticket.ID, model.TicketStatusUsed).Return(nil).Once()
		m.scanRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.TicketScan")).Return(&model.TicketScan{}, nil).Once()

		result, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    ticket.ID.String(),
			StationCode: "C",
			Direction:   model.ScanDirectionExit,
		}, 42)

		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, model.TicketStatusUsed, result.Status)
	})

	t.Run("ENTRY denied at wrong station", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusActive)

		m.stationRepo.On("FindByCode", mock.Anything, "Z").Return(otherStation, nil).Once()
		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByIDWithLock", mock.Anything, ticket.ID).Return(ticket, nil).Once()

		result, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    ticket.ID.String(),
			StationCode: "Z",
			Direction:   model.ScanDirectionEntry,
		}, 42)

		assert.ErrorIs(t, err, apperrors.ErrWrongStation)
		require.NotNil(t, result)
		assert.False(t, result.Accepted)
		// 拒絕訊息要能讓站務員看出票是往哪裡的
		assert.True(t, strings.Contains(result.Message, "A"), "message: %s", result.Message)
		m.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ENTRY denied for IN_USE ticket", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusInUse)

		m.stationRepo.On("FindByCode", mock.Anything, "A").Return(sourceStation, nil).Once()
		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByIDWithLock", mock.Anything, ticket.ID).Return(ticket, nil).Once()

		result, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    ticket.ID.String(),
			StationCode: "A",
			Direction:   model.ScanDirectionEntry,
		}, 42)

		assert.ErrorIs(t, err, apperrors.ErrWrongState)
		assert.False(t, result.Accepted)
	})

	t.Run("EXIT denied for ACTIVE ticket", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusActive)

		m.stationRepo.On("FindByCode", mock.Anything, "C").Return(destStation, nil).Once()
		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByIDWithLock", mock.Anything, ticket.ID).Return(ticket, nil).Once()

		result, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    ticket.ID.String(),
			StationCode: "C",
			Direction:   model.ScanDirectionExit,
		}, 42)

		assert.ErrorIs(t, err, apperrors.ErrWrongState)
		assert.False(t, result.Accepted)
	})

	t.Run("Denied for USED ticket", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusUsed)

		m.stationRepo.On("FindByCode", mock.Anything, "A").Return(sourceStation, nil).Once()
		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByIDWithLock", mock.Anything, ticket.ID).Return(ticket, nil).Once()

		result, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    ticket.ID.String(),
			StationCode: "A",
			Direction:   model.ScanDirectionEntry,
		}, 42)

		assert.ErrorIs(t, err, apperrors.ErrTicketTerminalState)
		assert.False(t, result.Accepted)
		assert.Equal(t, model.TicketStatusUsed, result.Status)
	})

	t.Run("Ticket past expiry is corrected in-lock and denied", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusActive)
		past := testNow.Add(-time.Minute)
		ticket.ExpiresAt = &past

		m.stationRepo.On("FindByCode", mock.Anything, "A").Return(sourceStation, nil).Once()
		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByIDWithLock", mock.Anything, ticket.ID).Return(ticket, nil).Once()
		m.repo.On("UpdateStatus", mock.Anything, ticket.ID, model.TicketStatusExpired).Return(nil).Once()

		result, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    ticket.ID.String(),
			StationCode: "A",
			Direction:   model.ScanDirectionEntry,
		}, 42)

		assert.ErrorIs(t, err, apperrors.ErrTicketTerminalState)
		assert.Equal(t, model.TicketStatusExpired, result.Status)
		m.repo.AssertExpectations(t)
		m.scanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed - malformed ticket id", func(t *testing.T) {
		svc, _ := setupTicketService()

		_, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    "not-a-uuid",
			StationCode: "A",
			Direction:   model.ScanDirectionEntry,
		}, 42)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - invalid direction", func(t *testing.T) {
		svc, _ := setupTicketService()

		_, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    uuid.New().String(),
			StationCode: "A",
			Direction:   model.ScanDirection("SIDEWAYS"),
		}, 42)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - unknown station", func(t *testing.T) {
		svc, m := setupTicketService()

		m.stationRepo.On("FindByCode", mock.Anything, "Q").Return(nil, apperrors.ErrStationNotFound).Once()

		_, err := svc.Scan(ctx, model.ScanRequest{
			TicketID:    uuid.New().String(),
			StationCode: "Q",
			Direction:   model.ScanDirectionEntry,
		}, 42)

		assert.ErrorIs(t, err, apperrors.ErrStationNotFound)
	})
}

func TestTicketService_GetForPassenger(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusActive)

		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil).Once()

		got, err := svc.GetForPassenger(ctx, 1, ticket.ID)

		require.NoError(t, err)
		assert.Equal(t, ticket.ID, got.ID)
	})

	t.Run("Failed - someone else's ticket reads as not found", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusActive)

		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil).Once()

		_, err := svc.GetForPassenger(ctx, 2, ticket.ID)

		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})

	t.Run("Failed - offline ticket has no owner", func(t *testing.T) {
		svc, m := setupTicketService()
		ticket := validTicket(model.TicketStatusUsed)
		ticket.PassengerID = nil

		m.repo.On("ExpireIfDue", mock.Anything, ticket.ID, testNow).Return(nil).Once()
		m.repo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil).Once()

		_, err := svc.GetForPassenger(ctx, 1, ticket.ID)

		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}

func TestTicketService_ListForPassenger(t *testing.T) {
	ctx := context.Background()

	t.Run("Expires due tickets before listing", func(t *testing.T) {
		svc, m := setupTicketService()
		tickets := []*model.Ticket{validTicket(model.TicketStatusActive)}

		m.repo.On("ExpireDueForPassenger", mock.Anything, 1, testNow).Return(nil).Once()
		m.repo.On("ListByPassenger", mock.Anything, 1).Return(tickets, nil).Once()

		got, err := svc.ListForPassenger(ctx, 1)

		require.NoError(t, err)
		assert.Len(t, got, 1)
		m.repo.AssertExpectations(t)
	})
}

func TestTicketService_IssueOfflineTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - ticket is born USED with entry and exit scans", func(t *testing.T) {
		svc, m := setupTicketService()
		quote := testQuote()
		source := &model.Station{ID: 1, Code: "A", Name: "Alpha"}
		dest := &model.Station{ID: 3, Code: "C", Name: "Charlie"}

		m.routes.On("Quote", mock.Anything, "A", "C", true).Return(quote, nil).Once()
		m.stationRepo.On("FindByCode", mock.Anything, "A").Return(source, nil).Once()
		m.stationRepo.On("FindByCode", mock.Anything, "C").Return(dest, nil).Once()
		m.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Ticket")).Return(&model.Ticket{}, nil).Once()
		m.scanRepo.On("Create", mock.Anything, mock.MatchedBy(func(scan *model.TicketScan) bool {
			return scan.Direction == model.ScanDirectionEntry && scan.StationID != nil && *scan.StationID == source.ID
		})).Return(&model.TicketScan{}, nil).Once()
		m.scanRepo.On("Create", mock.Anything, mock.MatchedBy(func(scan *model.TicketScan) bool {
			return scan.Direction == model.ScanDirectionExit && scan.StationID != nil && *scan.StationID == dest.ID
		})).Return(&model.TicketScan{}, nil).Once()

		ticket, err := svc.IssueOfflineTicket(ctx, model.OfflineTicketRequest{SourceCode: "A", DestinationCode: "C"}, 42)

		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusUsed, ticket.Status)
		assert.Nil(t, ticket.PassengerID)
		assert.True(t, ticket.Price.Equal(quote.Price))
		m.scanRepo.AssertExpectations(t)
	})

	t.Run("Failed - no path between stations", func(t *testing.T) {
		svc, m := setupTicketService()

		m.routes.On("Quote", mock.Anything, "A", "Z", true).Return(nil, apperrors.ErrNoPath).Once()

		_, err := svc.IssueOfflineTicket(ctx, model.OfflineTicketRequest{SourceCode: "A", DestinationCode: "Z"}, 42)

		assert.ErrorIs(t, err, apperrors.ErrNoPath)
		m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
