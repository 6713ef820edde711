package compose

import "github.com/lvillar/facture/style"

// Block is an atomic unit of invoice content consumed by the pagination
// layer. The sequence produced by Build is finalized; nothing mutates it
// after the builder returns.
type Block interface {
	block()
}

// TextBlock is a single styled paragraph.
type TextBlock struct {
	Text      string
	Style     style.Descriptor
	Underline bool
}

func (TextBlock) block() {}

// SpacerBlock is fixed vertical whitespace, in points.
type SpacerBlock struct {
	Height float64
}

func (SpacerBlock) block() {}

// Color is an RGB color.
type Color struct {
	R, G, B int
}

// TableBlock is a grid of styled text cells. Tables are the only blocks
// the pagination layer may split across a page boundary, row by row.
type TableBlock struct {
	Rows        [][]TextBlock
	ColWidths   []float64 // fractions of the content width, summing to 1
	RowHeight   float64   // fixed row height in points; 0 derives it from the font
	Boxed       bool      // draw a border around the table
	LastRowFill *Color    // background fill for the final row
}

func (TableBlock) block() {}
