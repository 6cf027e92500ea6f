package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"asistencia/internal/domain"
	"asistencia/internal/pdfexport"
	"asistencia/internal/service"
)

// MockArchiveService is a mock implementation of service.ArchiveService.
type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) Archive(ctx context.Context, sheetID uuid.UUID, doc *pdfexport.Document) (*domain.IssuedDocument, error) {
	args := m.Called(ctx, sheetID, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedDocument), args.Error(1)
}

func (m *MockArchiveService) List(ctx context.Context, offset, limit int) ([]domain.IssuedDocument, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.IssuedDocument), args.Int(1), args.Error(2)
}

func (m *MockArchiveService) DownloadURL(ctx context.Context, id uuid.UUID) (*service.DownloadLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadLink), args.Error(1)
}

func (m *MockArchiveService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
