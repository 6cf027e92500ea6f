package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"asistencia/internal/domain"
)

type fieldSetter func(e *domain.Entry, v string)

var (
	setDate         fieldSetter = func(e *domain.Entry, v string) { e.Date = v }
	setTime         fieldSetter = func(e *domain.Entry, v string) { e.Time = v }
	setIdentity     fieldSetter = func(e *domain.Entry, v string) { e.IdentityDocument = v }
	setInsurer      fieldSetter = func(e *domain.Entry, v string) { e.Insurer = v }
	setPatient      fieldSetter = func(e *domain.Entry, v string) { e.PatientName = v }
	setProcedure    fieldSetter = func(e *domain.Entry, v string) { e.Procedure = v }
	setFamily       fieldSetter = func(e *domain.Entry, v string) { e.FamilySignatureName = v }
	setCollaborator fieldSetter = func(e *domain.Entry, v string) { e.CollaboratorSignatureName = v }
)

// headerAliases maps normalized header text to the entry field it fills.
var headerAliases = map[string]fieldSetter{
	"date":                        setDate,
	"fecha":                       setDate,
	"fecha_dia_mes_ano":           setDate,
	"time":                        setTime,
	"hora":                        setTime,
	"identity_document":           setIdentity,
	"identitydocument":            setIdentity,
	"documento":                   setIdentity,
	"documento_de_identidad":      setIdentity,
	"insurer":                     setInsurer,
	"eps":                         setInsurer,
	"patient_name":                setPatient,
	"patientname":                 setPatient,
	"nombre":                      setPatient,
	"paciente":                    setPatient,
	"nombre_paciente":             setPatient,
	"procedure":                   setProcedure,
	"procedimiento":               setProcedure,
	"family_signature_name":       setFamily,
	"familysignaturename":         setFamily,
	"familiar":                    setFamily,
	"nombre_firma_familiar":       setFamily,
	"collaborator_signature_name": setCollaborator,
	"collaboratorsignaturename":   setCollaborator,
	"colaborador":                 setCollaborator,
	"nombre_firma_colaborador":    setCollaborator,
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

// normalizeHeader lowercases h, folds Spanish accents and collapses every run
// of other characters into a single underscore.
func normalizeHeader(h string) string {
	h = accentFolder.Replace(strings.ToLower(strings.TrimSpace(h)))
	var b strings.Builder
	pendingSep := false
	for _, r := range h {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// rowsToEntries maps tabular rows onto entries using the first non-empty row
// as the header. Blank data rows are skipped.
func rowsToEntries(rows [][]string) ([]record, error) {
	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, errors.New("no header row")
	}

	setters := make([]fieldSetter, len(rows[start]))
	recognized := 0
	for i, h := range rows[start] {
		if set, ok := headerAliases[normalizeHeader(h)]; ok {
			setters[i] = set
			recognized++
		}
	}
	if recognized == 0 {
		return nil, errors.New("header row has no recognized columns")
	}

	var records []record
	for n, row := range rows[start+1:] {
		if blank(row) {
			continue
		}
		var e domain.Entry
		for i, cell := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&e, strings.TrimSpace(cell))
			}
		}
		records = append(records, record{row: n + 1, entry: e})
	}
	return records, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseCSV(r io.Reader) ([]record, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, malformed(domain.ImportFormatCSV, err)
	}

	records, err := rowsToEntries(rows)
	if err != nil {
		return nil, malformed(domain.ImportFormatCSV, err)
	}
	return records, nil
}

// parseXLSX reads the first worksheet of the workbook.
func parseXLSX(r io.Reader) ([]record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, malformed(domain.ImportFormatXLSX, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, malformed(domain.ImportFormatXLSX, errors.New("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, malformed(domain.ImportFormatXLSX, err)
	}

	records, err := rowsToEntries(rows)
	if err != nil {
		return nil, malformed(domain.ImportFormatXLSX, err)
	}
	return records, nil
}
