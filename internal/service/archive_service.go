package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"asistencia/internal/domain"
	"asistencia/internal/pdfexport"
	"asistencia/internal/port"
)

// ArchiveConfig holds settings for the issued-document archive.
type ArchiveConfig struct {
	Bucket        string
	PresignExpiry int64 // seconds
	NotifyAddress string
}

// DownloadLink is a time-limited URL for an archived document.
type DownloadLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ArchiveService stores issued attendance sheets and serves them back to admins.
type ArchiveService interface {
	Archive(ctx context.Context, sheetID uuid.UUID, doc *pdfexport.Document) (*domain.IssuedDocument, error)
	List(ctx context.Context, offset, limit int) ([]domain.IssuedDocument, int, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (*DownloadLink, error)
	Ping(ctx context.Context) error
}

type archiveService struct {
	repo    port.IssuedDocumentRepository
	storage port.ObjectStorage
	email   port.EmailSender
	cfg     ArchiveConfig
	now     func() time.Time
}

// NewArchiveService creates a new ArchiveService implementation.
// A nil email sender disables notifications.
func NewArchiveService(
	repo port.IssuedDocumentRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	cfg ArchiveConfig,
) ArchiveService {
	return &archiveService{
		repo:    repo,
		storage: storage,
		email:   email,
		cfg:     cfg,
		now:     time.Now,
	}
}

// archiveKey returns the object key: sheets/{YYYY}/{MM}/{id}.pdf
func archiveKey(id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("sheets/%04d/%02d/%s.pdf", at.Year(), int(at.Month()), id)
}

func (s *archiveService) Archive(ctx context.Context, sheetID uuid.UUID, doc *pdfexport.Document) (*domain.IssuedDocument, error) {
	now := s.now().UTC()
	issued := &domain.IssuedDocument{
		ID:        uuid.New(),
		SheetID:   sheetID,
		S3Bucket:  s.cfg.Bucket,
		RowCount:  doc.RowCount,
		PageCount: doc.PageCount,
		SizeBytes: int64(len(doc.Bytes)),
		CreatedAt: now,
	}
	issued.S3Key = archiveKey(issued.ID, now)

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:             issued.S3Bucket,
		Key:                issued.S3Key,
		Body:               bytes.NewReader(doc.Bytes),
		ContentType:        "application/pdf",
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", domain.DocumentFileName),
		Size:               issued.SizeBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	if err := s.repo.Create(ctx, issued); err != nil {
		log.Printf("archiveService.Archive: recording %s failed, removing object: %v", issued.S3Key, err)
		if delErr := s.storage.Delete(ctx, issued.S3Bucket, issued.S3Key); delErr != nil {
			log.Printf("archiveService.Archive: cleanup of %s failed: %v", issued.S3Key, delErr)
		}
		return nil, fmt.Errorf("recording issued document: %w", err)
	}

	log.Printf("archiveService.Archive: sheet %s archived as %s (%d rows, %d pages, %d bytes)",
		sheetID, issued.ID, issued.RowCount, issued.PageCount, issued.SizeBytes)

	s.notify(ctx, issued)
	return issued, nil
}

// notify sends the issued-document e-mail. Failures are logged only.
func (s *archiveService) notify(ctx context.Context, issued *domain.IssuedDocument) {
	if s.email == nil || s.cfg.NotifyAddress == "" {
		return
	}
	url, err := s.storage.GetPresignedURL(ctx, issued.S3Bucket, issued.S3Key, s.cfg.PresignExpiry)
	if err != nil {
		log.Printf("archiveService.notify: presign %s failed: %v", issued.ID, err)
		return
	}
	if err := s.email.SendDocumentIssued(ctx, s.cfg.NotifyAddress, issued, url); err != nil {
		log.Printf("archiveService.notify: sending notification for %s failed: %v", issued.ID, err)
	}
}

func (s *archiveService) List(ctx context.Context, offset, limit int) ([]domain.IssuedDocument, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *archiveService) DownloadURL(ctx context.Context, id uuid.UUID) (*DownloadLink, error) {
	issued, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.GetPresignedURL(ctx, issued.S3Bucket, issued.S3Key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning %s: %w", issued.ID, err)
	}
	return &DownloadLink{
		URL:       url,
		ExpiresAt: s.now().UTC().Add(time.Duration(s.cfg.PresignExpiry) * time.Second),
	}, nil
}

func (s *archiveService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
