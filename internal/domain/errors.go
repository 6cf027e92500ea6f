package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound                 = errors.New("resource not found")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrForbidden                = errors.New("forbidden")
	ErrInvalidToken             = errors.New("invalid session token")
	ErrTokenExpired             = errors.New("session token expired")
	ErrSheetNotFound            = errors.New("sheet not found")
	ErrValidation               = errors.New("entry validation failed")
	ErrMissingAsset             = errors.New("optional asset unavailable")
	ErrUnsupportedFileType      = errors.New("unsupported file type")
	ErrFileTooLarge             = errors.New("file exceeds maximum allowed size")
	ErrMalformedImport          = errors.New("import file could not be parsed")
	ErrUploadFailed             = errors.New("file upload to storage failed")
	ErrArchiveDisabled          = errors.New("document archive is disabled")
	ErrIssuedDocumentNotFound   = errors.New("issued document not found")
	ErrInvalidAdminKey          = errors.New("invalid admin key")
	ErrDocumentGenerationFailed = errors.New("document generation failed")
)

// ValidationError lists the required entry fields that were left empty.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
