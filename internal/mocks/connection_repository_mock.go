package mocks

import (
	"context"

	"metro-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type ConnectionRepositoryMock struct {
	mock.Mock
}

func NewConnectionRepositoryMock() *ConnectionRepositoryMock {
	return &ConnectionRepositoryMock{}
}

func (m *ConnectionRepositoryMock) Create(ctx context.Context, conn *model.Connection) (*model.Connection, error) {
	args := m.Called(ctx, conn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Connection), args.Error(1)
}

func (m *ConnectionRepositoryMock) List(ctx context.Context, onlyEnabled bool) ([]*model.Connection, error) {
	args := m.Called(ctx, onlyEnabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Connection), args.Error(1)
}
