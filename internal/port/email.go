package port

import (
	"context"

	"asistencia/internal/domain"
)

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendDocumentIssued(ctx context.Context, toEmail string, doc *domain.IssuedDocument, downloadURL string) error
}
