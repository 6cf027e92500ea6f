// Package pdfexport renders the home-care attendance sheet as a paginated PDF.
//
// Coordinates are PDF points measured from the top-left corner of a
// landscape US Letter page, matching the fpdf convention.
package pdfexport

// Box is an axis-aligned rectangle in page coordinates.
type Box struct {
	X, Y, W, H float64
}

// Point is a text anchor in page coordinates; Y is the text baseline.
type Point struct {
	X, Y float64
}

// Geometry holds the fixed page layout of the attendance sheet.
type Geometry struct {
	PageWidth  float64
	PageHeight float64

	Logo            Box
	InstitutionName Point
	InstitutionSub  Point
	TitleY          float64

	MetaBox      Box
	MetaLabelCol float64 // width of the label column inside MetaBox
	MetaInset    float64 // left text inset inside each MetaBox column
	MetaBaseline float64 // baseline offset above each MetaBox row bottom

	ScheduleLabel Point
	ServiceLabel  Point

	TableLeft   float64
	TableTop    float64
	TableBottom float64

	// HeaderBand is the total height of the column header area; HeaderSplit
	// is the offset of the line separating its two rows.
	HeaderBand  float64
	HeaderSplit float64

	RowHeight float64
	// RowBaseline shifts row text below the row's vertical center.
	RowBaseline float64
	// CellInset is the left padding of left-aligned cell text.
	CellInset float64
}

// DefaultGeometry is the layout of form SIN-PHD-FR-001.
var DefaultGeometry = Geometry{
	PageWidth:  792,
	PageHeight: 612,

	Logo:            Box{X: 60, Y: 50, W: 40, H: 40},
	InstitutionName: Point{X: 105, Y: 60},
	InstitutionSub:  Point{X: 105, Y: 70},
	TitleY:          60,

	MetaBox:      Box{X: 632, Y: 50, W: 110, H: 50},
	MetaLabelCol: 40,
	MetaInset:    5,
	MetaBaseline: 2,

	ScheduleLabel: Point{X: 60, Y: 130},
	ServiceLabel:  Point{X: 400, Y: 130},

	TableLeft:   60,
	TableTop:    150,
	TableBottom: 552,

	HeaderBand:  45,
	HeaderSplit: 25,

	RowHeight:   25,
	RowBaseline: 3,
	CellInset:   2,
}

// FirstRowCenter returns the vertical center of the first data row on a page.
func (g Geometry) FirstRowCenter() float64 {
	return g.TableTop + g.HeaderBand + g.RowHeight/2
}

// overflows reports whether a row centered at y no longer fits above the
// table bottom. The check keeps half a row of clearance below the row.
func (g Geometry) overflows(y float64) bool {
	return y+g.RowHeight > g.TableBottom
}

// RowsPerPage returns how many rows fit on one page.
func (g Geometry) RowsPerPage() int {
	if g.RowHeight <= 0 {
		return 0
	}
	n := 0
	for y := g.FirstRowCenter(); !g.overflows(y); y += g.RowHeight {
		n++
	}
	return n
}
