package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"asistencia/internal/domain"
)

// MockSheetStore is a mock implementation of port.SheetStore.
type MockSheetStore struct {
	mock.Mock
}

func (m *MockSheetStore) Create(ctx context.Context) (*domain.Sheet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sheet), args.Error(1)
}

func (m *MockSheetStore) Get(ctx context.Context, sheetID uuid.UUID) (*domain.Sheet, error) {
	args := m.Called(ctx, sheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sheet), args.Error(1)
}

func (m *MockSheetStore) Delete(ctx context.Context, sheetID uuid.UUID) error {
	args := m.Called(ctx, sheetID)
	return args.Error(0)
}

func (m *MockSheetStore) Append(ctx context.Context, sheetID uuid.UUID, entries ...domain.Entry) (*domain.Sheet, error) {
	args := m.Called(ctx, sheetID, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sheet), args.Error(1)
}

func (m *MockSheetStore) List(ctx context.Context, sheetID uuid.UUID) ([]domain.Entry, error) {
	args := m.Called(ctx, sheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockSheetStore) Clear(ctx context.Context, sheetID uuid.UUID) error {
	args := m.Called(ctx, sheetID)
	return args.Error(0)
}

func (m *MockSheetStore) PurgeIdle(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}
