package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistencia/internal/domain"
)

type scriptedPrompter struct {
	answers  []string
	confirms []bool
	defaults []string
}

func (s *scriptedPrompter) Input(_, def string, _ bool) (string, error) {
	s.defaults = append(s.defaults, def)
	if len(s.answers) == 0 {
		return "", errAborted
	}
	v := s.answers[0]
	s.answers = s.answers[1:]
	return v, nil
}

func (s *scriptedPrompter) Confirm(string, bool) (bool, error) {
	if len(s.confirms) == 0 {
		return false, nil
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func TestCollectEntries(t *testing.T) {
	p := &scriptedPrompter{
		answers: []string{
			"01/02/2025", "08:00", "111", "EPS-A", "Ana", "Curación", "Pedro", "J. Ruiz",
			"01/02/2025", "09:30", "222", "", "Luis", "Terapia", "", "",
		},
		confirms: []bool{true, false},
	}

	entries, err := collectEntries(p)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Entry{
		Date: "01/02/2025", Time: "08:00", IdentityDocument: "111", Insurer: "EPS-A",
		PatientName: "Ana", Procedure: "Curación", FamilySignatureName: "Pedro",
		CollaboratorSignatureName: "J. Ruiz",
	}, entries[0])
	assert.Equal(t, "Luis", entries[1].PatientName)

	// the second entry is offered the first one's date and time
	assert.Equal(t, "01/02/2025", p.defaults[8])
	assert.Equal(t, "08:00", p.defaults[9])
	assert.Equal(t, "", p.defaults[10])
}

func TestCollectEntries_SkipsIncompleteEntry(t *testing.T) {
	p := &scriptedPrompter{
		answers:  []string{"01/02/2025", "", "", "", "Ana", "Curación", "", ""},
		confirms: []bool{false},
	}

	entries, err := collectEntries(p)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCollectEntries_Abort(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"01/02/2025"}}

	_, err := collectEntries(p)
	assert.True(t, errors.Is(err, errAborted))
}

func TestRun_FromCSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "entradas.csv")
	out := filepath.Join(dir, "planilla.pdf")
	csv := "fecha,documento,nombre,procedimiento\n" +
		"01/02/2025,111,Ana,Curación\n" +
		"01/02/2025,,Luis,Curación\n"
	require.NoError(t, os.WriteFile(in, []byte(csv), 0o600))

	var stdout bytes.Buffer
	err := run(options{in: in, out: out}, &scriptedPrompter{}, &stdout)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, stdout.String(), "row 2 skipped")
	assert.Contains(t, stdout.String(), "1 entries, 1 pages")
}

func TestRun_RequiresInput(t *testing.T) {
	err := run(options{out: filepath.Join(t.TempDir(), "x.pdf")}, &scriptedPrompter{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_UnsupportedInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "entradas.txt")
	require.NoError(t, os.WriteFile(in, []byte("x"), 0o600))

	err := run(options{in: in, out: filepath.Join(dir, "x.pdf")}, &scriptedPrompter{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}
