package pdfexport

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Canvas is the drawing surface the sheet is rendered onto.
// Text positions are baselines.
type Canvas interface {
	AddPage()
	SetFont(family string, style string, size float64)
	Line(x1, y1, x2, y2 float64)
	Rect(b Box)
	Text(x, y float64, text string)
	TextCentered(cx, y float64, text string)
	RegisterImage(name, imageType string, data []byte) error
	Image(name string, b Box)
	Output(w io.Writer) error
}

type fpdfCanvas struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

// newFpdfCanvas creates a landscape US Letter PDF measured in points.
func newFpdfCanvas(opts Options, created time.Time) *fpdfCanvas {
	pdf := fpdf.New("L", "pt", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(opts.Compress)
	pdf.SetLineWidth(1)
	pdf.SetCreator(Creator, true)
	pdf.SetTitle(Title, true)
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	pdf.SetCreationDate(created)
	pdf.SetCatalogSort(true)

	return &fpdfCanvas{
		pdf: pdf,
		// Core fonts are cp1252 encoded; accented Spanish text must be translated.
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *fpdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *fpdfCanvas) SetFont(family, style string, size float64) {
	c.pdf.SetFont(family, style, size)
}

func (c *fpdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *fpdfCanvas) Rect(b Box) {
	c.pdf.Rect(b.X, b.Y, b.W, b.H, "D")
}

func (c *fpdfCanvas) Text(x, y float64, text string) {
	c.pdf.Text(x, y, c.translate(text))
}

func (c *fpdfCanvas) TextCentered(cx, y float64, text string) {
	s := c.translate(text)
	c.pdf.Text(cx-c.pdf.GetStringWidth(s)/2, y, s)
}

// RegisterImage decodes an image once so it can be placed on every page.
// A failed registration leaves the document usable.
func (c *fpdfCanvas) RegisterImage(name, imageType string, data []byte) error {
	c.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if c.pdf.Err() {
		err := c.pdf.Error()
		c.pdf.ClearError()
		return fmt.Errorf("registering image %s: %w", name, err)
	}
	return nil
}

func (c *fpdfCanvas) Image(name string, b Box) {
	c.pdf.ImageOptions(name, b.X, b.Y, b.W, b.H, false, fpdf.ImageOptions{}, 0, "")
}

func (c *fpdfCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}
