package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistencia/internal/domain"
	"asistencia/internal/importer"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Len(t, row, 8)
	assert.Equal(t, "Fecha", row[0])
	assert.Equal(t, "Nombre/Firma colaborador", row[7])
}

func TestWriteEntries(t *testing.T) {
	entries := []domain.Entry{
		{Date: "01/01/2025", Time: "08:00", IdentityDocument: "111", Insurer: "EPS-A",
			PatientName: "Ana, María", Procedure: "Curación", CollaboratorSignatureName: "J. Ruiz"},
		{Date: "02/01/2025", IdentityDocument: "222", PatientName: "Luis", Procedure: `Toma "signos"`},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteEntries(entries))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"01/01/2025", "08:00", "111", "EPS-A", "Ana, María", "Curación", "", "J. Ruiz"}, rows[1])
	assert.Equal(t, `Toma "signos"`, rows[2][5])
}

func TestExportedCSVReimports(t *testing.T) {
	entries := []domain.Entry{
		{Date: "01/01/2025", Time: "08:00", IdentityDocument: "111", Insurer: "EPS-A",
			PatientName: "Ana", Procedure: "Curación", FamilySignatureName: "Marta", CollaboratorSignatureName: "J. Ruiz"},
	}

	var buf bytes.Buffer
	buf.Write(BOM)
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteEntries(entries))
	w.Flush()

	res, err := importer.Parse(domain.ImportFormatCSV, &buf)
	require.NoError(t, err)
	assert.Equal(t, entries, res.Entries)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Formato_Asistencia_Domiciliaria", "Formato_Asistencia_Domiciliaria"},
		{"Hospitalización domiciliaria", "Hospitalizaci_n_domiciliaria"},
		{"__a  b__", "a_b"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	day := time.Date(2025, 3, 7, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "Formato_Asistencia_Domiciliaria_2025-03-07.csv", BuildFilename("Formato Asistencia Domiciliaria", day))
}
