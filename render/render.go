// Package render paginates composed invoice content onto fixed-size
// pages and writes the finished PDF.
//
// The Assembler owns the page geometry and the font set. It walks the
// finalized block sequence, delegating text wrapping and page-break
// mechanics to the underlying engine, and registers the footer as a
// callback fired on every page. Each Assembler call renders one
// document; nothing is shared between builds.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/facture"
	"github.com/lvillar/facture/compose"
	"github.com/lvillar/facture/style"
	"github.com/lvillar/facture/table"
)

// lineSpacing is the line height multiplier applied to the font size.
const lineSpacing = 1.2

// Geometry is the fixed page layout, in points.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
}

// Letter is the default geometry: US Letter (8.5" x 11") with one-inch
// margins on all sides.
func Letter() Geometry {
	return Geometry{
		PageWidth:    612,
		PageHeight:   792,
		MarginLeft:   72,
		MarginTop:    72,
		MarginRight:  72,
		MarginBottom: 72,
	}
}

// ContentWidth is the page width minus the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// FooterFunc draws per-page chrome. It is invoked once per rendered
// page, first and subsequent pages alike, with the document handle, the
// page geometry and the active text translator.
type FooterFunc func(doc *fpdf.Fpdf, geo Geometry, tr table.Translator)

// FontFiles names the four TrueType files of a custom font family.
// Paths are relative to Dir.
type FontFiles struct {
	Dir        string
	Base       string
	Bold       string
	Italic     string
	BoldItalic string
}

// Assembler renders block sequences into PDF documents.
type Assembler struct {
	geo        Geometry
	fonts      style.FontSet
	fontFiles  *FontFiles
	fontFamily string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithGeometry overrides the default Letter geometry.
func WithGeometry(g Geometry) Option {
	return func(a *Assembler) {
		a.geo = g
	}
}

// WithFonts sets the font set used for composition and rendering. The
// families must be built into the engine or registered separately.
func WithFonts(fonts style.FontSet) Option {
	return func(a *Assembler) {
		a.fonts = fonts
	}
}

// WithFontFiles registers a custom four-face TrueType family under the
// given name and typesets the whole invoice with it.
func WithFontFiles(family string, files FontFiles) Option {
	return func(a *Assembler) {
		a.fontFiles = &files
		a.fontFamily = family
		a.fonts = style.FontSet{
			Base:       style.Font{Family: family},
			Bold:       style.Font{Family: family, Style: "B"},
			Italic:     style.Font{Family: family, Style: "I"},
			BoldItalic: style.Font{Family: family, Style: "BI"},
		}
	}
}

// NewAssembler creates an assembler. Defaults: Letter geometry, the
// engine's built-in Helvetica faces.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		geo:   Letter(),
		fonts: style.DefaultFonts(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fonts returns the font set blocks should be composed with.
func (a *Assembler) Fonts() style.FontSet {
	return a.fonts
}

// Geometry returns the page geometry.
func (a *Assembler) Geometry() Geometry {
	return a.geo
}

// Generate composes and renders a complete invoice to w: content blocks
// from the compose package, the firm's three-line footer on every page.
func (a *Assembler) Generate(w io.Writer, inv facture.Invoice) error {
	blocks, err := compose.Build(inv, a.fonts)
	if err != nil {
		return err
	}
	return a.Assemble(w, blocks, NewFooter(inv.Firm, a.fonts).Render)
}

// GenerateFile is Generate writing to a file. On any failure the partial
// file is removed; no partial output is ever left behind as valid.
func (a *Assembler) GenerateFile(path string, inv facture.Invoice) error {
	blocks, err := compose.Build(inv, a.fonts)
	if err != nil {
		return err
	}
	return a.AssembleFile(path, blocks, NewFooter(inv.Firm, a.fonts).Render)
}

// Assemble renders the block sequence to w, invoking footer on every
// page. The sequence is treated as final; blocks are atomic except for
// tables, which may break row by row.
func (a *Assembler) Assemble(w io.Writer, blocks []compose.Block, footer FooterFunc) error {
	pdf := a.newDocument()
	tr := a.translator(pdf)

	if footer != nil {
		pdf.SetFooterFunc(func() {
			footer(pdf, a.geo, tr)
		})
	}

	pdf.AddPage()
	pdf.SetFont(a.fonts.Base.Family, a.fonts.Base.Style, style.DefaultSize)

	tables := table.NewRenderer(pdf, tr)
	for _, blk := range blocks {
		switch b := blk.(type) {
		case compose.TextBlock:
			a.renderText(pdf, tr, b)
		case compose.SpacerBlock:
			pdf.Ln(b.Height)
		case compose.TableBlock:
			if err := tables.Render(b, a.geo.MarginLeft, a.geo.ContentWidth()); err != nil {
				return &facture.BuildError{Op: "Assemble", Err: err}
			}
		default:
			// Unreachable with the closed block set, but never drop
			// content silently.
			return &facture.BuildError{Op: "Assemble", Err: fmt.Errorf("unknown block type %T", blk)}
		}
	}

	if pdf.Err() {
		return &facture.BuildError{Op: "Assemble", Err: pdf.Error()}
	}
	if err := pdf.Output(w); err != nil {
		return &facture.BuildError{Op: "Assemble", Err: err}
	}
	return nil
}

// AssembleFile is Assemble writing to the file at path. The file is
// created immediately before writing and closed on all paths; a failed
// build removes it.
func (a *Assembler) AssembleFile(path string, blocks []compose.Block, footer FooterFunc) error {
	f, err := os.Create(path)
	if err != nil {
		return &facture.BuildError{Op: "WriteFile", Err: err}
	}
	if err := a.Assemble(f, blocks, footer); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return &facture.BuildError{Op: "WriteFile", Err: err}
	}
	return nil
}

func (a *Assembler) newDocument() *fpdf.Fpdf {
	init := fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: a.geo.PageWidth, Ht: a.geo.PageHeight},
	}
	if a.fontFiles != nil {
		init.FontDirStr = a.fontFiles.Dir
	}
	pdf := fpdf.NewCustom(&init)
	pdf.SetMargins(a.geo.MarginLeft, a.geo.MarginTop, a.geo.MarginRight)
	pdf.SetAutoPageBreak(true, a.geo.MarginBottom)

	if a.fontFiles != nil {
		pdf.AddUTF8Font(a.fontFamily, "", a.fontFiles.Base)
		pdf.AddUTF8Font(a.fontFamily, "B", a.fontFiles.Bold)
		pdf.AddUTF8Font(a.fontFamily, "I", a.fontFiles.Italic)
		pdf.AddUTF8Font(a.fontFamily, "BI", a.fontFiles.BoldItalic)
	}
	return pdf
}

// translator returns the text translator matching the registered fonts:
// Latin-1 mapping for the built-in faces, identity for UTF-8 fonts.
func (a *Assembler) translator(pdf *fpdf.Fpdf) table.Translator {
	if a.fontFiles != nil {
		return func(s string) string { return s }
	}
	return table.Translator(pdf.UnicodeTranslatorFromDescriptor(""))
}

func (a *Assembler) renderText(pdf *fpdf.Fpdf, tr table.Translator, b compose.TextBlock) {
	fontStyle := b.Style.Font.Style
	if b.Underline {
		fontStyle += "U"
	}
	pdf.SetFont(b.Style.Font.Family, fontStyle, b.Style.Size)
	pdf.SetX(a.geo.MarginLeft)
	pdf.MultiCell(a.geo.ContentWidth(), b.Style.Size*lineSpacing, tr(b.Text), "", string(b.Style.Align), false)
}
