package port

import (
	"context"

	"github.com/google/uuid"

	"asistencia/internal/domain"
)

// IssuedDocumentRepository defines the contract for archive metadata persistence.
type IssuedDocumentRepository interface {
	Create(ctx context.Context, doc *domain.IssuedDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.IssuedDocument, error)
	List(ctx context.Context, offset, limit int) ([]domain.IssuedDocument, int, error)
	Ping(ctx context.Context) error
}
