package mocks

import (
	"context"

	"metro-ticketing/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ScanRepositoryMock struct {
	mock.Mock
}

func NewScanRepositoryMock() *ScanRepositoryMock {
	return &ScanRepositoryMock{}
}

func (m *ScanRepositoryMock) Create(ctx context.Context, scan *model.TicketScan) (*model.TicketScan, error) {
	args := m.Called(ctx, scan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketScan), args.Error(1)
}

func (m *ScanRepositoryMock) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*model.TicketScan, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TicketScan), args.Error(1)
}
