// Package table draws styled invoice tables onto a PDF document.
//
// Tables are the one block kind allowed to break across a page boundary:
// rendering is row by row, and a row that would overflow the bottom
// margin triggers a page break before it is drawn. Page chrome such as
// the repeating footer is handled by the document's own page callbacks.
package table

import (
	"github.com/go-pdf/fpdf"

	"github.com/lvillar/facture/compose"
)

// Translator maps UTF-8 text to the encoding expected by the active
// font. With the engine's built-in fonts this is a Latin-1 translation;
// with registered UTF-8 fonts it is the identity.
type Translator func(string) string

// Renderer draws TableBlock values onto a PDF document.
type Renderer struct {
	pdf *fpdf.Fpdf
	tr  Translator
}

// NewRenderer creates a renderer bound to a document and its text
// translator.
func NewRenderer(pdf *fpdf.Fpdf, tr Translator) *Renderer {
	return &Renderer{pdf: pdf, tr: tr}
}

// Render draws the table starting at the current vertical position,
// left-aligned at x and spanning the given total width. Column widths
// are resolved from the block's fractional widths.
func (r *Renderer) Render(t compose.TableBlock, x, width float64) error {
	if r.pdf.Err() {
		return r.pdf.Error()
	}

	widths := make([]float64, len(t.ColWidths))
	for i, frac := range t.ColWidths {
		widths[i] = width * frac
	}

	last := len(t.Rows) - 1
	for i, row := range t.Rows {
		rowH := t.RowHeight
		if rowH == 0 {
			rowH = r.rowHeight(row)
		}

		_, pageH := r.pdf.GetPageSize()
		_, _, _, bMargin := r.pdf.GetMargins()
		if r.pdf.GetY()+rowH > pageH-bMargin {
			r.pdf.AddPage()
		}

		var fill *compose.Color
		if i == last {
			fill = t.LastRowFill
		}
		r.renderRow(row, widths, x, rowH, t.Boxed, fill)
	}

	return r.pdf.Error()
}

// rowHeight derives an automatic row height from the largest font size
// in the row. Invoice cells are single-line.
func (r *Renderer) rowHeight(row []compose.TextBlock) float64 {
	h := 5.0
	for _, cell := range row {
		if lh := cell.Style.Size * 1.5; lh > h {
			h = lh
		}
	}
	return h
}

func (r *Renderer) renderRow(row []compose.TextBlock, widths []float64, x, rowH float64, boxed bool, fill *compose.Color) {
	y := r.pdf.GetY()
	r.pdf.SetX(x)

	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		cellX := r.pdf.GetX()

		if fill != nil {
			r.pdf.SetFillColor(fill.R, fill.G, fill.B)
			r.pdf.Rect(cellX, y, widths[i], rowH, "F")
		}
		if boxed {
			r.pdf.Rect(cellX, y, widths[i], rowH, "D")
		}

		fontStyle := cell.Style.Font.Style
		if cell.Underline {
			fontStyle += "U"
		}
		r.pdf.SetFont(cell.Style.Font.Family, fontStyle, cell.Style.Size)

		r.pdf.SetXY(cellX, y)
		r.pdf.CellFormat(widths[i], rowH, r.tr(cell.Text), "", 0, string(cell.Style.Align), false, 0, "")

		r.pdf.SetXY(cellX+widths[i], y)
	}

	r.pdf.SetXY(x, y+rowH)
}
