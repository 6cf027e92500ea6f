package mocks

import (
	"github.com/stretchr/testify/mock"

	"asistencia/internal/domain"
	"asistencia/internal/pdfexport"
)

// MockSheetRenderer is a mock implementation of port.SheetRenderer.
type MockSheetRenderer struct {
	mock.Mock
}

func (m *MockSheetRenderer) Generate(entries []domain.Entry) (*pdfexport.Document, error) {
	args := m.Called(entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pdfexport.Document), args.Error(1)
}
