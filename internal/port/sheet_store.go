package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"asistencia/internal/domain"
)

// SheetStore holds the in-progress entries of every open sheet.
// Entries are kept in insertion order and never modified after Append.
type SheetStore interface {
	Create(ctx context.Context) (*domain.Sheet, error)
	Get(ctx context.Context, sheetID uuid.UUID) (*domain.Sheet, error)
	Delete(ctx context.Context, sheetID uuid.UUID) error
	Append(ctx context.Context, sheetID uuid.UUID, entries ...domain.Entry) (*domain.Sheet, error)
	List(ctx context.Context, sheetID uuid.UUID) ([]domain.Entry, error)
	Clear(ctx context.Context, sheetID uuid.UUID) error
	// PurgeIdle removes sheets not touched since the cutoff and reports how many were removed.
	PurgeIdle(ctx context.Context, cutoff time.Time) (int, error)
}
