package noop

import (
	"context"
	"log"

	"asistencia/internal/domain"
	"asistencia/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendDocumentIssued(_ context.Context, toEmail string, doc *domain.IssuedDocument, downloadURL string) error {
	log.Printf("[NOOP EMAIL] Document %s issued (%d rows, %d pages) for %s: %s",
		doc.ID, doc.RowCount, doc.PageCount, toEmail, downloadURL)
	return nil
}
