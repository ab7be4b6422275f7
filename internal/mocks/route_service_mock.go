package mocks

import (
	"context"

	"metro-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type RouteServiceMock struct {
	mock.Mock
}

func NewRouteServiceMock() *RouteServiceMock {
	return &RouteServiceMock{}
}

func (m *RouteServiceMock) Quote(ctx context.Context, sourceCode, destinationCode string, onlyEnabled bool) (*model.Quote, error) {
	args := m.Called(ctx, sourceCode, destinationCode, onlyEnabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}
