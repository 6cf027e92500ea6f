package port

import (
	"asistencia/internal/domain"
	"asistencia/internal/pdfexport"
)

// SheetRenderer turns entries into a finished attendance sheet PDF.
type SheetRenderer interface {
	Generate(entries []domain.Entry) (*pdfexport.Document, error)
}
