package mocks

import (
	"context"

	"metro-ticketing/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type WalletRepositoryMock struct {
	mock.Mock
}

func NewWalletRepositoryMock() *WalletRepositoryMock {
	return &WalletRepositoryMock{}
}

func (m *WalletRepositoryMock) FindPassengerByID(ctx context.Context, passengerID int) (*model.Passenger, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Passenger), args.Error(1)
}

func (m *WalletRepositoryMock) GetBalance(ctx context.Context, passengerID int) (decimal.Decimal, error) {
	args := m.Called(ctx, passengerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *WalletRepositoryMock) Debit(ctx context.Context, passengerID int, amount decimal.Decimal, description string) (*model.WalletTransaction, error) {
	args := m.Called(ctx, passengerID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WalletTransaction), args.Error(1)
}

func (m *WalletRepositoryMock) Credit(ctx context.Context, passengerID int, amount decimal.Decimal, description string) (*model.WalletTransaction, error) {
	args := m.Called(ctx, passengerID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WalletTransaction), args.Error(1)
}

func (m *WalletRepositoryMock) Transactions(ctx context.Context, passengerID int) ([]*model.WalletTransaction, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WalletTransaction), args.Error(1)
}
