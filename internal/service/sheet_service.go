package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"asistencia/internal/domain"
	"asistencia/internal/importer"
	"asistencia/internal/pdfexport"
	"asistencia/internal/port"
)

// SheetSession is a freshly opened sheet together with its access token.
type SheetSession struct {
	Sheet     *domain.Sheet `json:"sheet"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// ImportInput is a bulk entry upload.
type ImportInput struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// ImportResult summarizes a bulk upload.
type ImportResult struct {
	Sheet    *domain.Sheet       `json:"sheet"`
	Imported int                 `json:"imported"`
	Rejected []importer.RowError `json:"rejected"`
}

// GeneratedSheet is a rendered sheet plus its archive record when archiving is enabled.
type GeneratedSheet struct {
	Document *pdfexport.Document
	Archived *domain.IssuedDocument
	// Warnings collects every recovered problem: render warnings first,
	// followed by an archive failure if there was one.
	Warnings []error
}

// SheetService manages open sheets and their entries.
type SheetService interface {
	Create(ctx context.Context) (*SheetSession, error)
	Get(ctx context.Context, sheetID uuid.UUID) (*domain.Sheet, error)
	Delete(ctx context.Context, sheetID uuid.UUID) error
	AddEntry(ctx context.Context, sheetID uuid.UUID, entry domain.Entry) (*domain.Sheet, error)
	ListEntries(ctx context.Context, sheetID uuid.UUID) ([]domain.Entry, error)
	ClearEntries(ctx context.Context, sheetID uuid.UUID) error
	Import(ctx context.Context, sheetID uuid.UUID, input ImportInput) (*ImportResult, error)
	GeneratePDF(ctx context.Context, sheetID uuid.UUID) (*GeneratedSheet, error)
}

type sheetService struct {
	store          port.SheetStore
	sessions       SessionService
	renderer       port.SheetRenderer
	archive        ArchiveService
	maxImportBytes int64
}

// NewSheetService creates a new SheetService implementation.
// archive may be nil when the issued-document archive is disabled.
func NewSheetService(
	store port.SheetStore,
	sessions SessionService,
	renderer port.SheetRenderer,
	archive ArchiveService,
	maxImportBytes int64,
) SheetService {
	return &sheetService{
		store:          store,
		sessions:       sessions,
		renderer:       renderer,
		archive:        archive,
		maxImportBytes: maxImportBytes,
	}
}

func (s *sheetService) Create(ctx context.Context) (*SheetSession, error) {
	sheet, err := s.store.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	token, err := s.sessions.Issue(sheet.ID)
	if err != nil {
		_ = s.store.Delete(ctx, sheet.ID)
		return nil, err
	}

	log.Printf("sheetService.Create: opened sheet %s", sheet.ID)
	return &SheetSession{Sheet: sheet, Token: token.Token, ExpiresAt: token.ExpiresAt}, nil
}

func (s *sheetService) Get(ctx context.Context, sheetID uuid.UUID) (*domain.Sheet, error) {
	return s.store.Get(ctx, sheetID)
}

func (s *sheetService) Delete(ctx context.Context, sheetID uuid.UUID) error {
	if err := s.store.Delete(ctx, sheetID); err != nil {
		return err
	}
	log.Printf("sheetService.Delete: closed sheet %s", sheetID)
	return nil
}

// AddEntry validates entry and appends it. A rejected entry leaves the sheet unchanged.
func (s *sheetService) AddEntry(ctx context.Context, sheetID uuid.UUID, entry domain.Entry) (*domain.Sheet, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return s.store.Append(ctx, sheetID, entry)
}

func (s *sheetService) ListEntries(ctx context.Context, sheetID uuid.UUID) ([]domain.Entry, error) {
	return s.store.List(ctx, sheetID)
}

func (s *sheetService) ClearEntries(ctx context.Context, sheetID uuid.UUID) error {
	return s.store.Clear(ctx, sheetID)
}

// Import parses an uploaded file and appends every valid row. Rows missing
// required fields are reported and skipped.
func (s *sheetService) Import(ctx context.Context, sheetID uuid.UUID, input ImportInput) (*ImportResult, error) {
	if input.Size > s.maxImportBytes {
		return nil, domain.ErrFileTooLarge
	}
	format, err := importer.FormatFromFilename(input.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Get(ctx, sheetID); err != nil {
		return nil, err
	}

	parsed, err := importer.Parse(format, io.LimitReader(input.Body, s.maxImportBytes))
	if err != nil {
		return nil, err
	}

	sheet, err := s.store.Append(ctx, sheetID, parsed.Entries...)
	if err != nil {
		return nil, err
	}

	log.Printf("sheetService.Import: sheet %s imported %d entries from %s (%d rejected)",
		sheetID, len(parsed.Entries), format, len(parsed.Rejected))
	return &ImportResult{
		Sheet:    sheet,
		Imported: len(parsed.Entries),
		Rejected: parsed.Rejected,
	}, nil
}

// GeneratePDF renders the sheet's current entries. Archiving, when enabled,
// never blocks the download: its failure is returned as a warning.
func (s *sheetService) GeneratePDF(ctx context.Context, sheetID uuid.UUID) (*GeneratedSheet, error) {
	entries, err := s.store.List(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	doc, err := s.renderer.Generate(entries)
	if err != nil {
		log.Printf("sheetService.GeneratePDF: rendering sheet %s failed: %v", sheetID, err)
		return nil, err
	}

	out := &GeneratedSheet{Document: doc}
	out.Warnings = append(out.Warnings, doc.Warnings...)
	for _, w := range doc.Warnings {
		log.Printf("sheetService.GeneratePDF: sheet %s: %v", sheetID, w)
	}

	if s.archive != nil {
		issued, err := s.archive.Archive(ctx, sheetID, doc)
		if err != nil {
			log.Printf("sheetService.GeneratePDF: archiving sheet %s failed: %v", sheetID, err)
			out.Warnings = append(out.Warnings, fmt.Errorf("archiving document: %w", err))
		} else {
			out.Archived = issued
		}
	}
	return out, nil
}
