// Package importer reads attendance entries in bulk from spreadsheet, CSV,
// YAML and JSON files.
//
// Tabular formats take their column mapping from the first non-empty row.
// Headers are matched case- and accent-insensitively against the English
// field names and the Spanish labels printed on the form; unknown columns are
// ignored. Each data row is validated on its own, so one incomplete row does
// not reject the whole file.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"asistencia/internal/domain"
)

// RowError reports a row that was skipped because required fields are empty.
// Row is 1-based and counts data rows after the header, blank rows included.
type RowError struct {
	Row    int      `json:"row"`
	Fields []string `json:"missing_fields"`
}

// Result is the outcome of parsing an import file.
type Result struct {
	Entries  []domain.Entry `json:"-"`
	Rejected []RowError     `json:"rejected"`
}

// FormatFromFilename picks the import format from a file extension.
func FormatFromFilename(name string) (domain.ImportFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	format, ok := domain.ImportFormats[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, ext)
	}
	return format, nil
}

// Parse reads every entry from r. Structural problems, such as a corrupt
// file or missing header, fail with domain.ErrMalformedImport; rows missing
// required fields are listed in Result.Rejected.
func Parse(format domain.ImportFormat, r io.Reader) (*Result, error) {
	var (
		records []record
		err     error
	)
	switch format {
	case domain.ImportFormatXLSX:
		records, err = parseXLSX(r)
	case domain.ImportFormatCSV:
		records, err = parseCSV(r)
	case domain.ImportFormatYAML:
		records, err = parseYAML(r)
	case domain.ImportFormatJSON:
		records, err = parseJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, format)
	}
	if err != nil {
		return nil, err
	}
	return validate(records), nil
}

// record is a parsed entry with the data row it came from. Blank rows are
// dropped by the tabular parsers but still count toward row numbers.
type record struct {
	row   int
	entry domain.Entry
}

func sequential(entries []domain.Entry) []record {
	records := make([]record, len(entries))
	for i, e := range entries {
		records[i] = record{row: i + 1, entry: e}
	}
	return records
}

func validate(records []record) *Result {
	res := &Result{}
	for _, rec := range records {
		if missing := rec.entry.MissingRequired(); len(missing) > 0 {
			res.Rejected = append(res.Rejected, RowError{Row: rec.row, Fields: missing})
			continue
		}
		res.Entries = append(res.Entries, rec.entry)
	}
	return res
}

func malformed(format domain.ImportFormat, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrMalformedImport, format, err)
}
