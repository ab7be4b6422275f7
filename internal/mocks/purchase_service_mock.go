package mocks

import (
	"context"

	"metro-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type PurchaseServiceMock struct {
	mock.Mock
}

func NewPurchaseServiceMock() *PurchaseServiceMock {
	return &PurchaseServiceMock{}
}

func (m *PurchaseServiceMock) RequestPurchase(ctx context.Context, passengerID int, req model.PurchaseRequest) (*model.PurchaseResponse, error) {
	args := m.Called(ctx, passengerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseResponse), args.Error(1)
}

func (m *PurchaseServiceMock) Verify(ctx context.Context, passengerID int, code string) (*model.Ticket, error) {
	args := m.Called(ctx, passengerID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *PurchaseServiceMock) Resend(ctx context.Context, passengerID int) (*model.PurchaseResponse, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseResponse), args.Error(1)
}
