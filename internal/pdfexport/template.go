package pdfexport

import "fmt"

// Fixed form texts.
const (
	Creator         = "asistencia"
	Title           = "FORMATO DE ASISTENCIA ATENCIÓN DOMICILIARIA"
	InstitutionName = "Goleman"
	InstitutionSub  = "IPS"
	ScheduleLabel   = "JORNADA HORARIA:"
	ServiceLabel    = "HOSPITALIZACIÓN DOMICILIARIA"

	FormCode    = "SIN-PHD-FR-001"
	FormDate    = "15/05/2024"
	FormVersion = "2"
)

const fontFamily = "Helvetica"

// Header label baselines: lines are spaced headerLineGap apart and the block
// is vertically centered in the upper header row.
const (
	headerLineGap       = 10
	headerBaselineShift = 4.5
)

type metaField struct {
	label string
	value string
}

// metaFields returns the rows of the metadata box for the given page.
func metaFields(page, total int) []metaField {
	return []metaField{
		{label: "Código", value: FormCode},
		{label: "Fecha", value: FormDate},
		{label: "Versión", value: FormVersion},
		{label: "Página", value: PageLabel(page, total)},
	}
}

// PageLabel formats the page-number field of the metadata box.
func PageLabel(page, total int) string {
	return fmt.Sprintf("%d de %d", page, total)
}

// drawTemplate paints the furniture repeated on every page: logo, institution
// name, title, metadata box, section labels and the empty table grid.
// page is 1-based. An empty logo name skips the image.
func (g *Generator) drawTemplate(c Canvas, page, total int, logo string) {
	geo := g.geom

	if logo != "" {
		c.Image(logo, geo.Logo)
	}

	c.SetFont(fontFamily, "B", 11)
	c.Text(geo.InstitutionName.X, geo.InstitutionName.Y, InstitutionName)
	c.SetFont(fontFamily, "", 8)
	c.Text(geo.InstitutionSub.X, geo.InstitutionSub.Y, InstitutionSub)

	c.SetFont(fontFamily, "B", 10)
	c.TextCentered(geo.PageWidth/2, geo.TitleY, Title)

	g.drawMetaBox(c, page, total)

	c.SetFont(fontFamily, "B", 8)
	c.Text(geo.ScheduleLabel.X, geo.ScheduleLabel.Y, ScheduleLabel)
	c.Text(geo.ServiceLabel.X, geo.ServiceLabel.Y, ServiceLabel)

	g.drawGrid(c)
}

func (g *Generator) drawMetaBox(c Canvas, page, total int) {
	geo := g.geom
	box := geo.MetaBox
	fields := metaFields(page, total)
	rowH := box.H / float64(len(fields))

	c.Rect(box)
	for i := 1; i < len(fields); i++ {
		y := box.Y + float64(i)*rowH
		c.Line(box.X, y, box.X+box.W, y)
	}
	c.Line(box.X+geo.MetaLabelCol, box.Y, box.X+geo.MetaLabelCol, box.Y+box.H)

	c.SetFont(fontFamily, "", 7)
	for i, f := range fields {
		baseline := box.Y + float64(i+1)*rowH - geo.MetaBaseline
		c.Text(box.X+geo.MetaInset, baseline, f.label)
		c.Text(box.X+geo.MetaLabelCol+geo.MetaInset, baseline, f.value)
	}
}

// drawGrid draws the column separators and the header band lines.
func (g *Generator) drawGrid(c Canvas) {
	geo := g.geom
	left, right := geo.TableLeft, g.tableRight()
	top, bottom := geo.TableTop, geo.TableBottom

	c.Line(left, top, left, bottom)
	for _, col := range g.cols {
		c.Line(col.Right(), top, col.Right(), bottom)
	}

	c.Line(left, top, right, top)
	c.Line(left, top+geo.HeaderSplit, right, top+geo.HeaderSplit)
	c.Line(left, top+geo.HeaderBand, right, top+geo.HeaderBand)
}

// drawColumnHeaders centers each column's header lines within its span.
func (g *Generator) drawColumnHeaders(c Canvas) {
	geo := g.geom
	c.SetFont(fontFamily, "B", 7)
	for _, col := range g.cols {
		n := float64(len(col.Header))
		first := geo.TableTop + (geo.HeaderSplit-headerLineGap*(n-1))/2 + headerBaselineShift
		for i, line := range col.Header {
			c.TextCentered(col.Center(), first+headerLineGap*float64(i), line)
		}
	}
}
