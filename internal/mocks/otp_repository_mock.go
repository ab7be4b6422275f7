package mocks

import (
	"context"

	"metro-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type OTPRepositoryMock struct {
	mock.Mock
}

func NewOTPRepositoryMock() *OTPRepositoryMock {
	return &OTPRepositoryMock{}
}

func (m *OTPRepositoryMock) Create(ctx context.Context, otp *model.PurchaseOTP) (*model.PurchaseOTP, error) {
	args := m.Called(ctx, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseOTP), args.Error(1)
}

func (m *OTPRepositoryMock) FindCurrent(ctx context.Context, passengerID int, purpose model.OTPPurpose) (*model.PurchaseOTP, error) {
	args := m.Called(ctx, passengerID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseOTP), args.Error(1)
}

func (m *OTPRepositoryMock) MarkUsed(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OTPRepositoryMock) SupersedeUnused(ctx context.Context, passengerID int, purpose model.OTPPurpose) error {
	args := m.Called(ctx, passengerID, purpose)
	return args.Error(0)
}
