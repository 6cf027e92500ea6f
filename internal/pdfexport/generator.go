package pdfexport

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"asistencia/internal/domain"
)

// Options configures a Generator.
type Options struct {
	// LogoPath is the image drawn in the top-left logo box. Empty disables it.
	LogoPath string
	// Compress enables deflate compression of page content streams.
	Compress bool
	// Author is written to the PDF metadata when set.
	Author string
	// Now stamps the PDF creation date; defaults to time.Now.
	Now func() time.Time
}

// Document is a rendered attendance sheet.
type Document struct {
	Bytes     []byte
	PageCount int
	RowCount  int
	// Pages holds the row-to-page assignment used for rendering.
	Pages []PagePlan
	// Warnings are recovered problems, such as a missing logo, that did not
	// prevent the document from being produced.
	Warnings []error
}

// Reader returns a reader positioned at the start of the PDF bytes.
func (d *Document) Reader() io.Reader {
	return bytes.NewReader(d.Bytes)
}

// Generator renders attendance sheets. It holds only immutable configuration
// and is safe for concurrent use.
type Generator struct {
	geom Geometry
	cols []Column
	opts Options
}

// NewGenerator creates a Generator using the standard form layout.
func NewGenerator(opts Options) *Generator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{
		geom: DefaultGeometry,
		cols: buildColumns(DefaultGeometry.TableLeft),
		opts: opts,
	}
}

// Generate lays out entries in order across as many pages as needed and
// returns the finished PDF. The only error is a failure to produce the
// output, in which case no partial document is returned.
func (g *Generator) Generate(entries []domain.Entry) (*Document, error) {
	canvas := newFpdfCanvas(g.opts, g.opts.Now())
	doc := g.render(canvas, entries)

	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentGenerationFailed, err)
	}
	doc.Bytes = buf.Bytes()
	return doc, nil
}

// render draws the whole document onto c. The page count is fixed by a
// pagination pass before the first page is drawn so every page can show it.
func (g *Generator) render(c Canvas, entries []domain.Entry) *Document {
	pages := Paginate(len(entries), g.geom)
	doc := &Document{
		PageCount: len(pages),
		RowCount:  len(entries),
		Pages:     pages,
	}

	logo, err := g.prepareLogo(c)
	if err != nil {
		doc.Warnings = append(doc.Warnings, err)
	}

	left, right := g.geom.TableLeft, g.tableRight()
	for i, page := range pages {
		c.AddPage()
		g.drawTemplate(c, i+1, len(pages), logo)
		g.drawColumnHeaders(c)

		for _, y := range page.Separators {
			c.Line(left, y, right, y)
		}

		c.SetFont(fontFamily, "", 8)
		for _, row := range page.Rows {
			g.drawRow(c, entries[row.Entry], row.CenterY)
		}

		c.Line(left, g.geom.TableBottom, right, g.geom.TableBottom)
	}
	return doc
}

// prepareLogo registers the logo image with the canvas and returns the name
// to draw it by. Any failure is returned as a domain.ErrMissingAsset warning
// with an empty name.
func (g *Generator) prepareLogo(c Canvas) (string, error) {
	if g.opts.LogoPath == "" {
		return "", nil
	}
	asset, err := LoadAsset(g.opts.LogoPath)
	if err != nil {
		return "", err
	}
	if err := c.RegisterImage(asset.Name, asset.Type, asset.Data); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMissingAsset, err)
	}
	return asset.Name, nil
}

// drawRow writes the entry's fields into their cells. Values are neither
// wrapped nor truncated; long text runs into the neighbouring column.
func (g *Generator) drawRow(c Canvas, e domain.Entry, centerY float64) {
	y := centerY + g.geom.RowBaseline
	for _, col := range g.cols {
		value := col.Value(e)
		if col.Align == AlignCenter {
			c.TextCentered(col.Center(), y, value)
			continue
		}
		c.Text(col.X+g.geom.CellInset, y, value)
	}
}

func (g *Generator) tableRight() float64 {
	return g.cols[len(g.cols)-1].Right()
}
