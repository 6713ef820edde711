// Package compose assembles an invoice's ordered content block sequence.
//
// Build applies a fixed template: principal title, optional collaborators
// block, client address, place and date, invoice number box, fee detail
// with itemized table and totals, closing boilerplate. All string
// formatting (two-decimal amounts, HH:MM durations, French dates) lives
// here; the fees package only supplies unformatted values.
package compose

import (
	"fmt"
	"time"

	"github.com/lvillar/facture"
	"github.com/lvillar/facture/fees"
	"github.com/lvillar/facture/style"
)

// frenchMonths is the fixed month-name table; no locale machinery.
var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

const (
	titleSize  = 16.0
	spacerUnit = 12.0 // one spacer step, in points

	numberBoxHeight   = 36.0 // half an inch
	feeTableRowHeight = 12.0

	entryDateLayout = "02/01/2006"
)

// lightGrey highlights the grand-total row.
var lightGrey = Color{R: 211, G: 211, B: 211}

// builder accumulates blocks and holds the first style resolution error.
type builder struct {
	styles *style.Resolver
	blocks []Block
	err    error
}

// Build validates the invoice and assembles its block sequence using the
// given font set. The returned slice is complete and final; on any error
// no blocks are returned.
func Build(inv facture.Invoice, fonts style.FontSet) ([]Block, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	b := &builder{styles: style.NewResolver(fonts)}
	items, totals := fees.Compute(inv.Fees)

	b.lawyerTitle(inv.Firm.PrincipalLawyer)
	b.spacer(1.5)
	if len(inv.Firm.Collaborators) > 0 {
		b.collaborators(inv.Firm.Collaborators)
		b.spacer(1)
	}
	b.clientAddress(inv.Client)
	b.spacer(3)
	b.placeAndDate(inv.Place, inv.Date)
	b.spacer(0.5)
	b.invoiceNumberBox(inv.Number)
	b.spacer(2)
	b.feeDetail(inv.Fees, items, totals)
	b.spacer(2)
	b.closing()

	if b.err != nil {
		return nil, b.err
	}
	return b.blocks, nil
}

// style resolves a descriptor, recording the first failure. Resolution
// errors are unreachable with the closed enums but must not be dropped.
func (b *builder) style(align style.Alignment, emphasis style.Emphasis, size float64) style.Descriptor {
	d, err := b.styles.Resolve(align, emphasis, size)
	if err != nil && b.err == nil {
		b.err = err
	}
	return d
}

func (b *builder) text(s string, d style.Descriptor) {
	b.blocks = append(b.blocks, TextBlock{Text: s, Style: d})
}

func (b *builder) underlined(s string, d style.Descriptor) {
	b.blocks = append(b.blocks, TextBlock{Text: s, Style: d, Underline: true})
}

func (b *builder) spacer(steps float64) {
	b.blocks = append(b.blocks, SpacerBlock{Height: spacerUnit * steps})
}

func (b *builder) lawyerTitle(name string) {
	b.text(name, b.style(style.Center, style.Bold, titleSize))
	b.spacer(0.3)
	b.text("Avocate à la Cour", b.style(style.Center, style.Base, titleSize))
}

func (b *builder) collaborators(names []string) {
	b.text("En collaboration avec :", b.style(style.Left, style.Italic, 0))
	for _, name := range names {
		b.text(name, b.style(style.Left, style.Base, 0))
	}
	caption := "Avocate à la Cour"
	if len(names) > 1 {
		caption = "Avocates à la Cour"
	}
	b.text(caption, b.style(style.Left, style.Base, 0))
}

func (b *builder) clientAddress(c facture.Client) {
	d := b.style(style.Right, style.Bold, 0)
	title, err := c.Gender.Honorific()
	if err != nil && b.err == nil {
		b.err = err
	}
	b.text(fmt.Sprintf("%s %s", title, c.Name), d)
	b.text(c.Address, d)
	b.text(fmt.Sprintf("%s %s", c.ZipCode, c.City), d)
}

func (b *builder) placeAndDate(place string, date time.Time) {
	line := fmt.Sprintf("%s, le %d %s %d",
		place, date.Day(), frenchMonths[date.Month()-1], date.Year())
	b.text(line, b.style(style.Right, style.Base, 0))
}

// invoiceNumberBox centers the invoice number in a bordered, fixed-height
// box spanning the full content width.
func (b *builder) invoiceNumberBox(number string) {
	cell := TextBlock{
		Text:  fmt.Sprintf("FACTURE N°%s", number),
		Style: b.style(style.Center, style.Bold, 0),
	}
	b.blocks = append(b.blocks, TableBlock{
		Rows:      [][]TextBlock{{cell}},
		ColWidths: []float64{1},
		RowHeight: numberBoxHeight,
		Boxed:     true,
	})
}

func (b *builder) feeDetail(schedule facture.FeeSchedule, items []fees.LineItem, totals fees.Totals) {
	heading := b.style(style.Left, style.Bold, 0)

	b.underlined("Honoraires", heading)
	b.spacer(1)

	rate := fmt.Sprintf(
		"Facturation horaire : %s euros HT de l'heure (selon l'article 2.1 du contrat de mission)",
		schedule.HourlyRate)
	b.text(rate, heading)
	b.spacer(1)

	b.text("Diligences effectuées :", heading)
	b.spacer(1)

	b.feeTable(items)
	b.spacer(5)
	b.totalsTable(totals)
}

// feeTable lists one row per entry: an empty lead column, the description
// with the entry date, the HH:MM duration, and the price.
func (b *builder) feeTable(items []fees.LineItem) {
	empty := b.style(style.Left, style.Base, 0)
	left := b.style(style.Left, style.Bold, 0)
	right := b.style(style.Right, style.Bold, 0)

	rows := make([][]TextBlock, 0, len(items))
	for _, it := range items {
		rows = append(rows, []TextBlock{
			{Text: "", Style: empty},
			{Text: fmt.Sprintf("%s (%s)", it.Entry.Description, it.Entry.Date.Format(entryDateLayout)), Style: left},
			{Text: fmt.Sprintf("%02d:%02d", it.Hours, it.Minutes), Style: right},
			{Text: it.Price.StringFixed(2) + " €", Style: right},
		})
	}

	b.blocks = append(b.blocks, TableBlock{
		Rows:      rows,
		ColWidths: []float64{0.15, 0.55, 0.15, 0.15},
		RowHeight: feeTableRowHeight,
	})
}

// totalsTable emits the four aggregate rows; the grand total row is
// highlighted with a grey background.
func (b *builder) totalsTable(t fees.Totals) {
	empty := b.style(style.Left, style.Base, 0)
	label := b.style(style.Left, style.Bold, 0)
	value := b.style(style.Right, style.Bold, 0)

	duration := TextBlock{
		Text:      fmt.Sprintf("Soit un total de %02dh%02d", t.Hours, t.Minutes),
		Style:     label,
		Underline: true,
	}

	rows := [][]TextBlock{
		{{Text: "", Style: empty}, duration, {Text: "", Style: value}},
		{{Text: "", Style: empty}, {Text: "Honoraires H.T.", Style: label}, {Text: t.Subtotal.StringFixed(2) + " €", Style: value}},
		{{Text: "", Style: empty}, {Text: "TVA 20%", Style: label}, {Text: t.VAT.StringFixed(2) + " €", Style: value}},
		{{Text: "", Style: empty}, {Text: "TOTAL T.T.C. DU", Style: label}, {Text: t.Total.StringFixed(2) + " €", Style: value}},
	}

	fill := lightGrey
	b.blocks = append(b.blocks, TableBlock{
		Rows:        rows,
		ColWidths:   []float64{0.10, 0.63, 0.27},
		LastRowFill: &fill,
	})
}

func (b *builder) closing() {
	b.text("TVA Applicable -", b.style(style.Left, style.Italic, 0))
	b.text("En votre aimable règlement", b.style(style.Left, style.Bold, 0))
	b.spacer(1)
	b.underlined(
		"Conformément à nos usages de professions libérales, la présente est payable dès réception",
		b.style(style.Left, style.Base, 0))
}
