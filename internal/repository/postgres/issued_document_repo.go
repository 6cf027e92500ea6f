package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"asistencia/internal/domain"
	"asistencia/internal/port"
)

type issuedDocumentRepo struct {
	db *sqlx.DB
}

// NewIssuedDocumentRepo creates a new PostgreSQL-backed IssuedDocumentRepository.
func NewIssuedDocumentRepo(db *sqlx.DB) port.IssuedDocumentRepository {
	return &issuedDocumentRepo{db: db}
}

func (r *issuedDocumentRepo) Create(ctx context.Context, doc *domain.IssuedDocument) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO issued_documents
			(id, sheet_id, s3_bucket, s3_key, row_count, page_count, size_bytes, created_at)
		 VALUES
			(:id, :sheet_id, :s3_bucket, :s3_key, :row_count, :page_count, :size_bytes, :created_at)`,
		doc)
	if err != nil {
		return fmt.Errorf("issuedDocumentRepo.Create: %w", err)
	}
	return nil
}

func (r *issuedDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.IssuedDocument, error) {
	var doc domain.IssuedDocument
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM issued_documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIssuedDocumentNotFound
		}
		return nil, fmt.Errorf("issuedDocumentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *issuedDocumentRepo) List(ctx context.Context, offset, limit int) ([]domain.IssuedDocument, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM issued_documents"); err != nil {
		return nil, 0, fmt.Errorf("issuedDocumentRepo.List count: %w", err)
	}

	var docs []domain.IssuedDocument
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM issued_documents
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("issuedDocumentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *issuedDocumentRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
