package mocks

import (
	"context"

	"metro-ticketing/internal/routing"

	"github.com/stretchr/testify/mock"
)

type GraphCacheMock struct {
	mock.Mock
}

func NewGraphCacheMock() *GraphCacheMock {
	return &GraphCacheMock{}
}

func (m *GraphCacheMock) Get(ctx context.Context, onlyEnabled bool) (*routing.NetworkSnapshot, error) {
	args := m.Called(ctx, onlyEnabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*routing.NetworkSnapshot), args.Error(1)
}

func (m *GraphCacheMock) Set(ctx context.Context, onlyEnabled bool, snapshot *routing.NetworkSnapshot) error {
	args := m.Called(ctx, onlyEnabled, snapshot)
	return args.Error(0)
}

func (m *GraphCacheMock) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
