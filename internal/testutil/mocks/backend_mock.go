package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/playstats/internal/store"
)

// MockBackend is a mock implementation of store.Backend
type MockBackend[P store.Record] struct {
	mock.Mock
}

func (m *MockBackend[P]) LoadAll(ctx context.Context) (store.Snapshot[P], error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return store.Snapshot[P]{}, args.Error(1)
	}
	return args.Get(0).(store.Snapshot[P]), args.Error(1)
}

func (m *MockBackend[P]) SaveAll(ctx context.Context, profiles []P) error {
	args := m.Called(ctx, profiles)
	return args.Error(0)
}

func (m *MockBackend[P]) Location() string {
	args := m.Called()
	return args.String(0)
}
