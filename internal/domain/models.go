package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row of the home-care attendance sheet.
type Entry struct {
	Date                      string `json:"date" yaml:"date"`
	Time                      string `json:"time" yaml:"time"`
	IdentityDocument          string `json:"identity_document" yaml:"identity_document"`
	Insurer                   string `json:"insurer" yaml:"insurer"`
	PatientName               string `json:"patient_name" yaml:"patient_name"`
	Procedure                 string `json:"procedure" yaml:"procedure"`
	FamilySignatureName       string `json:"family_signature_name" yaml:"family_signature_name"`
	CollaboratorSignatureName string `json:"collaborator_signature_name" yaml:"collaborator_signature_name"`
}

// MissingRequired returns the JSON names of required fields that are blank.
// Date, identity document, patient name and procedure are required.
func (e Entry) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(e.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(e.IdentityDocument) == "" {
		missing = append(missing, "identity_document")
	}
	if strings.TrimSpace(e.PatientName) == "" {
		missing = append(missing, "patient_name")
	}
	if strings.TrimSpace(e.Procedure) == "" {
		missing = append(missing, "procedure")
	}
	return missing
}

// Validate returns a *ValidationError when any required field is blank.
func (e Entry) Validate() error {
	if missing := e.MissingRequired(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Sheet is an in-progress attendance sheet owned by one session.
type Sheet struct {
	ID         uuid.UUID `json:"id"`
	EntryCount int       `json:"entry_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IssuedDocument records a generated PDF kept in the archive.
type IssuedDocument struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SheetID   uuid.UUID `db:"sheet_id" json:"sheet_id"`
	S3Bucket  string    `db:"s3_bucket" json:"-"`
	S3Key     string    `db:"s3_key" json:"s3_key"`
	RowCount  int       `db:"row_count" json:"row_count"`
	PageCount int       `db:"page_count" json:"page_count"`
	SizeBytes int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ImportFormat identifies a file format accepted for bulk entry upload.
type ImportFormat string

const (
	ImportFormatXLSX ImportFormat = "xlsx"
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatYAML ImportFormat = "yaml"
	ImportFormatJSON ImportFormat = "json"
)

// ImportFormats maps lowercase file extensions to their import format.
var ImportFormats = map[string]ImportFormat{
	"xlsx": ImportFormatXLSX,
	"csv":  ImportFormatCSV,
	"yaml": ImportFormatYAML,
	"yml":  ImportFormatYAML,
	"json": ImportFormatJSON,
}

// DocumentFileName is the download name of a generated attendance sheet.
const DocumentFileName = "Formato_Asistencia_Domiciliaria.pdf"
