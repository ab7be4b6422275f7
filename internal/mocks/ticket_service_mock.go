package mocks

import (
	"context"

	"metro-ticketing/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type TicketServiceMock struct {
	mock.Mock
}

func NewTicketServiceMock() *TicketServiceMock {
	return &TicketServiceMock{}
}

func (m *TicketServiceMock) ListForPassenger(ctx context.Context, passengerID int) ([]*model.Ticket, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *TicketServiceMock) GetForPassenger(ctx context.Context, passengerID int, ticketID uuid.UUID) (*model.Ticket, error) {
	args := m.Called(ctx, passengerID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketServiceMock) ListScans(ctx context.Context, ticketID uuid.UUID) ([]*model.TicketScan, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TicketScan), args.Error(1)
}

func (m *TicketServiceMock) Scan(ctx context.Context, req model.ScanRequest, operatorID int) (*model.ScanResult, error) {
	args := m.Called(ctx, req, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanResult), args.Error(1)
}

func (m *TicketServiceMock) IssueOfflineTicket(ctx context.Context, req model.OfflineTicketRequest, operatorID int) (*model.Ticket, error) {
	args := m.Called(ctx, req, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}
