package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"asistencia/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row. The labels are accepted back by the
// bulk importer, so an exported sheet can be re-imported unchanged.
var columns = []string{
	"Fecha",
	"Hora",
	"Documento de identidad",
	"EPS",
	"Nombre",
	"Procedimiento",
	"Nombre/Firma familiar",
	"Nombre/Firma colaborador",
}

// Writer wraps csv.Writer for exporting attendance entries as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEntries writes one row per entry in order.
func (w *Writer) WriteEntries(entries []domain.Entry) error {
	for i := range entries {
		if err := w.csv.Write(entryToRow(&entries[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func entryToRow(e *domain.Entry) []string {
	return []string{
		e.Date,
		e.Time,
		e.IdentityDocument,
		e.Insurer,
		e.PatientName,
		e.Procedure,
		e.FamilySignatureName,
		e.CollaboratorSignatureName,
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename makes name safe for a Content-Disposition header.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_base}_{YYYY-MM-DD}.csv for the given day.
func BuildFilename(base string, day time.Time) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(base), day.Format("2006-01-02"))
}
