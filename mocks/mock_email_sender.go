package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"asistencia/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendDocumentIssued(ctx context.Context, toEmail string, doc *domain.IssuedDocument, downloadURL string) error {
	args := m.Called(ctx, toEmail, doc, downloadURL)
	return args.Error(0)
}
