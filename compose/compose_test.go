package compose

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lvillar/facture"
	"github.com/lvillar/facture/style"
)

func testInvoice() facture.Invoice {
	return facture.Invoice{
		Number: "2025-121",
		Place:  "Paris",
		Date:   time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC),
		Client: facture.Client{
			Name:    "John DOE",
			Gender:  facture.GenderMale,
			Address: "123 Rue de la Paix",
			ZipCode: "75000",
			City:    "Paris",
		},
		Firm: facture.LawFirm{
			PrincipalLawyer: "Jean-Pierre Machin",
			Collaborators:   []string{"Gerard LOULOU", "Francesca MARTINI"},
			Address:         "123 Rue de la Paix",
			ZipCode:         "75000",
			City:            "Paris",
			Phone:           "01.23.45.67.89",
			Mail:            "cabinet.avocate@gmail.com",
			Website:         "cabinet-avocat.fr",
			VATNumber:       "FR1234567890",
			SIRETNumber:     "1234567890",
		},
		Fees: facture.FeeSchedule{
			HourlyRate: decimal.NewFromInt(300),
			Entries: []facture.TimeEntry{
				{Description: "Courriel Mme : Projet LO", Duration: 11 * time.Minute, Date: time.Date(2025, time.March, 24, 0, 0, 0, 0, time.UTC)},
				{Description: "Courriel Mme", Duration: 6 * time.Minute, Date: time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)},
				{Description: "Renvoi audience", Duration: time.Hour, Date: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)},
				{Description: "Préparation des conclusions", Duration: 3*time.Hour + 12*time.Minute, Date: time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC)},
			},
		},
	}
}

func mustBuild(t *testing.T, inv facture.Invoice) []Block {
	t.Helper()
	blocks, err := Build(inv, style.DefaultFonts())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return blocks
}

func textBlocks(blocks []Block) []TextBlock {
	var out []TextBlock
	for _, b := range blocks {
		if tb, ok := b.(TextBlock); ok {
			out = append(out, tb)
		}
	}
	return out
}

func tableBlocks(blocks []Block) []TableBlock {
	var out []TableBlock
	for _, b := range blocks {
		if tb, ok := b.(TableBlock); ok {
			out = append(out, tb)
		}
	}
	return out
}

func findText(blocks []Block, text string) (TextBlock, bool) {
	for _, tb := range textBlocks(blocks) {
		if tb.Text == text {
			return tb, true
		}
	}
	return TextBlock{}, false
}

func TestBuildStartsWithPrincipalTitle(t *testing.T) {
	blocks := mustBuild(t, testInvoice())

	title, ok := blocks[0].(TextBlock)
	if !ok {
		t.Fatalf("first block is %T, want TextBlock", blocks[0])
	}
	if title.Text != "Jean-Pierre Machin" {
		t.Errorf("title text = %q", title.Text)
	}
	if title.Style.Align != style.Center || title.Style.Size != 16 {
		t.Errorf("title style = %+v, want centered 16pt", title.Style)
	}
	if title.Style.Font != style.DefaultFonts().Bold {
		t.Errorf("title font = %+v, want bold face", title.Style.Font)
	}

	if _, ok := findText(blocks, "Avocate à la Cour"); !ok {
		t.Error("missing fixed caption under the title")
	}
}

func TestCollaboratorsOmittedWhenEmpty(t *testing.T) {
	inv := testInvoice()
	inv.Firm.Collaborators = nil
	blocks := mustBuild(t, inv)

	if _, ok := findText(blocks, "En collaboration avec :"); ok {
		t.Error("collaborators block emitted for empty list")
	}
	// The rest of the document still renders.
	if len(tableBlocks(blocks)) != 3 {
		t.Errorf("expected 3 tables, got %d", len(tableBlocks(blocks)))
	}
}

func TestCollaboratorsSingular(t *testing.T) {
	inv := testInvoice()
	inv.Firm.Collaborators = []string{"Gerard LOULOU"}
	blocks := mustBuild(t, inv)

	if _, ok := findText(blocks, "Avocates à la Cour"); ok {
		t.Error("plural caption emitted for a single collaborator")
	}

	found := false
	for _, tb := range textBlocks(blocks) {
		if tb.Text == "Avocate à la Cour" && tb.Style.Align == style.Left {
			found = true
		}
	}
	if !found {
		t.Error("missing singular left-aligned caption")
	}
}

func TestCollaboratorsPlural(t *testing.T) {
	blocks := mustBuild(t, testInvoice())

	if _, ok := findText(blocks, "En collaboration avec :"); !ok {
		t.Fatal("missing collaborators heading")
	}
	if _, ok := findText(blocks, "Gerard LOULOU"); !ok {
		t.Error("missing collaborator name")
	}
	if _, ok := findText(blocks, "Avocates à la Cour"); !ok {
		t.Error("missing plural caption")
	}
}

func TestClientAddressHonorific(t *testing.T) {
	blocks := mustBuild(t, testInvoice())
	tb, ok := findText(blocks, "Monsieur John DOE")
	if !ok {
		t.Fatal("missing honorific line for gender M")
	}
	if tb.Style.Align != style.Right || tb.Style.Font != style.DefaultFonts().Bold {
		t.Errorf("address line style = %+v, want right-aligned bold", tb.Style)
	}

	inv := testInvoice()
	inv.Client.Gender = facture.GenderFemale
	blocks = mustBuild(t, inv)
	if _, ok := findText(blocks, "Madame John DOE"); !ok {
		t.Error("missing honorific line for gender F")
	}
}

func TestPlaceAndDateLine(t *testing.T) {
	blocks := mustBuild(t, testInvoice())
	if _, ok := findText(blocks, "Paris, le 3 mai 2025"); !ok {
		t.Error("missing or misformatted place-and-date line")
	}
}

func TestInvoiceNumberBox(t *testing.T) {
	blocks := mustBuild(t, testInvoice())

	var box *TableBlock
	for _, tb := range tableBlocks(blocks) {
		if tb.Boxed {
			b := tb
			box = &b
		}
	}
	if box == nil {
		t.Fatal("missing boxed invoice number block")
	}
	if len(box.Rows) != 1 || len(box.Rows[0]) != 1 {
		t.Fatalf("box is %dx%d, want 1x1", len(box.Rows), len(box.Rows[0]))
	}
	if got := box.Rows[0][0].Text; got != "FACTURE N°2025-121" {
		t.Errorf("box text = %q", got)
	}
	if box.RowHeight != 36 {
		t.Errorf("box height = %v, want 36", box.RowHeight)
	}
	if len(box.ColWidths) != 1 || box.ColWidths[0] != 1 {
		t.Errorf("box widths = %v, want full content width", box.ColWidths)
	}
}

func TestFeeTableRows(t *testing.T) {
	blocks := mustBuild(t, testInvoice())

	var fee *TableBlock
	for _, tb := range tableBlocks(blocks) {
		if len(tb.ColWidths) == 4 {
			b := tb
			fee = &b
		}
	}
	if fee == nil {
		t.Fatal("missing itemized fee table")
	}
	if len(fee.Rows) != 4 {
		t.Fatalf("fee table has %d rows, want 4", len(fee.Rows))
	}

	first := fee.Rows[0]
	if first[0].Text != "" {
		t.Errorf("lead column not empty: %q", first[0].Text)
	}
	if first[1].Text != "Courriel Mme : Projet LO (24/03/2025)" {
		t.Errorf("description cell = %q", first[1].Text)
	}
	if first[2].Text != "00:11" {
		t.Errorf("duration cell = %q, want 00:11", first[2].Text)
	}
	if first[3].Text != "55.00 €" {
		t.Errorf("price cell = %q, want 55.00 €", first[3].Text)
	}
	if first[3].Style.Align != style.Right {
		t.Errorf("price cell alignment = %q, want right", first[3].Style.Align)
	}

	if got := fee.Rows[3][2].Text; got != "03:12" {
		t.Errorf("last duration cell = %q, want 03:12", got)
	}
}

func TestTotalsTable(t *testing.T) {
	blocks := mustBuild(t, testInvoice())

	tables := tableBlocks(blocks)
	totals := tables[len(tables)-1]
	if totals.LastRowFill == nil {
		t.Fatal("grand total row not highlighted")
	}
	if len(totals.Rows) != 4 {
		t.Fatalf("totals table has %d rows, want 4", len(totals.Rows))
	}

	duration := totals.Rows[0][1]
	if duration.Text != "Soit un total de 04h29" {
		t.Errorf("duration row = %q", duration.Text)
	}
	if !duration.Underline {
		t.Error("duration row not underlined")
	}

	wantRows := []struct{ label, value string }{
		{"Honoraires H.T.", "1345.00 €"},
		{"TVA 20%", "269.00 €"},
		{"TOTAL T.T.C. DU", "1614.00 €"},
	}
	for i, want := range wantRows {
		row := totals.Rows[i+1]
		if row[1].Text != want.label || row[2].Text != want.value {
			t.Errorf("totals row %d = %q / %q, want %q / %q", i+1, row[1].Text, row[2].Text, want.label, want.value)
		}
	}
}

func TestClosingBlock(t *testing.T) {
	blocks := mustBuild(t, testInvoice())

	last := textBlocks(blocks)
	final := last[len(last)-1]
	if !strings.HasPrefix(final.Text, "Conformément à nos usages") {
		t.Errorf("last text block = %q", final.Text)
	}
	if !final.Underline {
		t.Error("payment-terms notice not underlined")
	}
	if _, ok := findText(blocks, "TVA Applicable -"); !ok {
		t.Error("missing VAT-applicable sentence")
	}
	if _, ok := findText(blocks, "En votre aimable règlement"); !ok {
		t.Error("missing settlement sentence")
	}
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*facture.Invoice)
		want   error
	}{
		{"invalid gender", func(inv *facture.Invoice) { inv.Client.Gender = "X" }, facture.ErrInvalidGender},
		{"negative duration", func(inv *facture.Invoice) { inv.Fees.Entries[0].Duration = -time.Minute }, facture.ErrNegativeDuration},
		{"negative rate", func(inv *facture.Invoice) { inv.Fees.HourlyRate = decimal.NewFromInt(-1) }, facture.ErrNegativeRate},
		{"missing number", func(inv *facture.Invoice) { inv.Number = "" }, facture.ErrMissingField},
		{"missing client name", func(inv *facture.Invoice) { inv.Client.Name = "" }, facture.ErrMissingField},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			inv := testInvoice()
			c.mutate(&inv)
			blocks, err := Build(inv, style.DefaultFonts())
			if !errors.Is(err, c.want) {
				t.Fatalf("Build error = %v, want %v", err, c.want)
			}
			if blocks != nil {
				t.Error("blocks returned alongside an error")
			}
		})
	}
}

func TestBlockOrder(t *testing.T) {
	blocks := mustBuild(t, testInvoice())

	// Title first, boxed number before the fee table, totals last of the
	// tables, closing text at the end.
	var boxIdx, feeIdx, totalsIdx int
	for i, b := range blocks {
		tb, ok := b.(TableBlock)
		if !ok {
			continue
		}
		switch {
		case tb.Boxed:
			boxIdx = i
		case len(tb.ColWidths) == 4:
			feeIdx = i
		case tb.LastRowFill != nil:
			totalsIdx = i
		}
	}
	if !(boxIdx < feeIdx && feeIdx < totalsIdx) {
		t.Errorf("table order wrong: box=%d fee=%d totals=%d", boxIdx, feeIdx, totalsIdx)
	}
}
