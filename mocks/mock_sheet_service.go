package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"asistencia/internal/domain"
	"asistencia/internal/service"
)

// MockSheetService is a mock implementation of service.SheetService.
type MockSheetService struct {
	mock.Mock
}

func (m *MockSheetService) Create(ctx context.Context) (*service.SheetSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SheetSession), args.Error(1)
}

func (m *MockSheetService) Get(ctx context.Context, sheetID uuid.UUID) (*domain.Sheet, error) {
	args := m.Called(ctx, sheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sheet), args.Error(1)
}

func (m *MockSheetService) Delete(ctx context.Context, sheetID uuid.UUID) error {
	args := m.Called(ctx, sheetID)
	return args.Error(0)
}

func (m *MockSheetService) AddEntry(ctx context.Context, sheetID uuid.UUID, entry domain.Entry) (*domain.Sheet, error) {
	args := m.Called(ctx, sheetID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sheet), args.Error(1)
}

func (m *MockSheetService) ListEntries(ctx context.Context, sheetID uuid.UUID) ([]domain.Entry, error) {
	args := m.Called(ctx, sheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockSheetService) ClearEntries(ctx context.Context, sheetID uuid.UUID) error {
	args := m.Called(ctx, sheetID)
	return args.Error(0)
}

func (m *MockSheetService) Import(ctx context.Context, sheetID uuid.UUID, input service.ImportInput) (*service.ImportResult, error) {
	args := m.Called(ctx, sheetID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockSheetService) GeneratePDF(ctx context.Context, sheetID uuid.UUID) (*service.GeneratedSheet, error) {
	args := m.Called(ctx, sheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GeneratedSheet), args.Error(1)
}
