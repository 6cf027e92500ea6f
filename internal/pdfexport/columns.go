package pdfexport

import "asistencia/internal/domain"

// Align is the horizontal alignment of cell text within a column.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Column describes one fixed column of the attendance table.
type Column struct {
	Key    string
	X      float64 // left edge
	Width  float64
	Header []string // one or two header lines
	Align  Align
	Value  func(domain.Entry) string
}

// Center returns the horizontal center of the column.
func (c Column) Center() float64 {
	return c.X + c.Width/2
}

// Right returns the x coordinate of the column's right edge.
func (c Column) Right() float64 {
	return c.X + c.Width
}

// columnWidths lays the eight columns edge to edge from the table's left margin
// so that the grid closes exactly at the right margin of the page.
var columnWidths = [...]float64{58, 48, 82, 78, 110, 110, 100, 86}

// Columns is the fixed left-to-right column table. It must not be modified.
var Columns = buildColumns(DefaultGeometry.TableLeft)

func buildColumns(left float64) []Column {
	cols := []Column{
		{
			Key:    "date",
			Header: []string{"FECHA", "(DÍA/MES/AÑO)"},
			Value:  func(e domain.Entry) string { return e.Date },
		},
		{
			Key:    "time",
			Header: []string{"HORA"},
			Value:  func(e domain.Entry) string { return e.Time },
		},
		{
			Key:    "identity_document",
			Header: []string{"DOCUMENTO DE", "IDENTIDAD"},
			Value:  func(e domain.Entry) string { return e.IdentityDocument },
		},
		{
			Key:    "insurer",
			Header: []string{"EPS"},
			Value:  func(e domain.Entry) string { return e.Insurer },
		},
		{
			Key:    "patient_name",
			Header: []string{"NOMBRE"},
			Value:  func(e domain.Entry) string { return e.PatientName },
		},
		{
			Key:    "procedure",
			Header: []string{"PROCEDIMIENTO"},
			Value:  func(e domain.Entry) string { return e.Procedure },
		},
		{
			Key:    "family_signature",
			Header: []string{"NOMBRE/FIRMA", "FAMILIAR"},
			Align:  AlignCenter,
			Value:  func(e domain.Entry) string { return e.FamilySignatureName },
		},
		{
			Key:    "collaborator_signature",
			Header: []string{"NOMBRE/FIRMA", "COLABORADOR"},
			Align:  AlignCenter,
			Value:  func(e domain.Entry) string { return e.CollaboratorSignatureName },
		},
	}

	x := left
	for i := range cols {
		cols[i].X = x
		cols[i].Width = columnWidths[i]
		x += columnWidths[i]
	}
	return cols
}
