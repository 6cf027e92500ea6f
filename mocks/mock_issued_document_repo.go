package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"asistencia/internal/domain"
)

// MockIssuedDocumentRepo is a mock implementation of port.IssuedDocumentRepository.
type MockIssuedDocumentRepo struct {
	mock.Mock
}

func (m *MockIssuedDocumentRepo) Create(ctx context.Context, doc *domain.IssuedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockIssuedDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.IssuedDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedDocument), args.Error(1)
}

func (m *MockIssuedDocumentRepo) List(ctx context.Context, offset, limit int) ([]domain.IssuedDocument, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.IssuedDocument), args.Int(1), args.Error(2)
}

func (m *MockIssuedDocumentRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
