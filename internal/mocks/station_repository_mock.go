package mocks

import (
	"context"

	"metro-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type StationRepositoryMock struct {
	mock.Mock
}

func NewStationRepositoryMock() *StationRepositoryMock {
	return &StationRepositoryMock{}
}

func (m *StationRepositoryMock) Create(ctx context.Context, station *model.Station) (*model.Station, error) {
	args := m.Called(ctx, station)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Station), args.Error(1)
}

func (m *StationRepositoryMock) List(ctx context.Context) ([]*model.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Station), args.Error(1)
}

func (m *StationRepositoryMock) FindByCode(ctx context.Context, code string) (*model.Station, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Station), args.Error(1)
}
