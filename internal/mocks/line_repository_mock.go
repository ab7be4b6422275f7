package mocks

import (
	"context"

	"metro-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type LineRepositoryMock struct {
	mock.Mock
}

func NewLineRepositoryMock() *LineRepositoryMock {
	return &LineRepositoryMock{}
}

func (m *LineRepositoryMock) Create(ctx context.Context, line *model.MetroLine) (*model.MetroLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MetroLine), args.Error(1)
}

func (m *LineRepositoryMock) List(ctx context.Context) ([]*model.MetroLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MetroLine), args.Error(1)
}

func (m *LineRepositoryMock) FindByCode(ctx context.Context, code string) (*model.MetroLine, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MetroLine), args.Error(1)
}

func (m *LineRepositoryMock) AnyEnabled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *LineRepositoryMock) SetEnabled(ctx context.Context, code string, enabled bool) (*model.MetroLine, error) {
	args := m.Called(ctx, code, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MetroLine), args.Error(1)
}
