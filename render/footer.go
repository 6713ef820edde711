package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/facture"
	"github.com/lvillar/facture/style"
	"github.com/lvillar/facture/table"
)

// footerSize is the fixed footer font size in points. The vertical
// offsets below are tuned for this size and the default bottom margin;
// changing either means re-deriving them.
const footerSize = 9.0

// Footer renders the firm's three-line footer: address, contact
// details, VAT and SIRET numbers. The same lines appear on every page.
type Footer struct {
	firm facture.LawFirm
	font style.Font
}

// NewFooter creates the footer for a firm, typeset with the base face
// of the given font set.
func NewFooter(firm facture.LawFirm, fonts style.FontSet) *Footer {
	return &Footer{firm: firm, font: fonts.Base}
}

// Line is one footer line with its vertical placement: Bottom is the
// distance from the page bottom to the underside of the line.
type Line struct {
	Text   string
	Bottom float64
}

// Lines computes the three lines and their placement. The lines stack
// bottom-up around the anchor at half the bottom margin: 1.5 and 0.5
// line heights above it, 0.5 below. The bottom margin is assumed tall
// enough to hold all three.
func (f *Footer) Lines(geo Geometry) [3]Line {
	h := footerSize * lineSpacing
	y0 := geo.MarginBottom / 2
	return [3]Line{
		{
			Text:   fmt.Sprintf("%s %s %s", f.firm.Address, f.firm.ZipCode, f.firm.City),
			Bottom: y0 + h*1.5,
		},
		{
			Text:   fmt.Sprintf("Tel : %s - Mail : %s - Site : %s", f.firm.Phone, f.firm.Mail, f.firm.Website),
			Bottom: y0 + h*0.5,
		},
		{
			Text:   fmt.Sprintf("TVA Intracommunautaire : %s - SIRET : %s", f.firm.VATNumber, f.firm.SIRETNumber),
			Bottom: y0 - h*0.5,
		},
	}
}

// Render draws the footer. It satisfies FooterFunc and is registered as
// the per-page callback, so it fires identically on the first and every
// subsequent page.
func (f *Footer) Render(doc *fpdf.Fpdf, geo Geometry, tr table.Translator) {
	doc.SetFont(f.font.Family, f.font.Style, footerSize)
	h := footerSize * lineSpacing
	for _, ln := range f.Lines(geo) {
		doc.SetXY(geo.MarginLeft, geo.PageHeight-ln.Bottom-h)
		doc.CellFormat(geo.ContentWidth(), h, tr(ln.Text), "", 0, "C", false, 0, "")
	}
}
