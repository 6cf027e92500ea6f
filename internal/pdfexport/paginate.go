package pdfexport

// PlacedRow is an entry positioned on a page.
type PlacedRow struct {
	Entry   int     // index into the input sequence
	CenterY float64 // vertical center of the row
}

// PagePlan is the layout of a single page.
type PagePlan struct {
	Rows []PlacedRow
	// Separators are the y positions of the horizontal row lines on the page.
	// A row that forces a page break leaves its separator on the page it did
	// not fit on, and draws it again below itself on the new page.
	Separators []float64
}

// Paginate assigns n rows to pages top to bottom. It always returns at least
// one page; a page break never leaves a page without rows.
func Paginate(n int, g Geometry) []PagePlan {
	pages := []PagePlan{{}}
	y := g.FirstRowCenter()

	for i := 0; i < n; i++ {
		page := &pages[len(pages)-1]
		page.Separators = append(page.Separators, y+g.RowHeight/2)

		if g.overflows(y) && len(page.Rows) > 0 {
			pages = append(pages, PagePlan{})
			page = &pages[len(pages)-1]
			y = g.FirstRowCenter()
			page.Separators = append(page.Separators, y+g.RowHeight/2)
		}

		page.Rows = append(page.Rows, PlacedRow{Entry: i, CenterY: y})
		y += g.RowHeight
	}
	return pages
}

// PageCount returns the number of pages n rows occupy.
func PageCount(n int, g Geometry) int {
	return len(Paginate(n, g))
}
