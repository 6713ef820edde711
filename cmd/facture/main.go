// Command facture renders a French legal invoice PDF from a JSON
// description.
//
// Usage:
//
//	facture [-in invoice.json] [-o invoice.pdf]
//
// Without -in, a built-in sample invoice is rendered.
//
// Input format:
//
//	{
//	  "number": "2025-121",
//	  "place": "Paris",
//	  "date": "2025-05-12",
//	  "client": {"name": "John DOE", "gender": "M", "address": "...", "zipCode": "75000", "city": "Paris"},
//	  "lawFirm": {"principalLawyer": "...", "collaborators": ["..."], ...},
//	  "fees": {
//	    "hourlyRate": "300",
//	    "entries": [{"description": "...", "minutes": 11, "date": "2025-03-24"}]
//	  }
//	}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lvillar/facture"
	"github.com/lvillar/facture/render"
)

const dateLayout = "2006-01-02"

// invoiceFile is the JSON shape of an invoice description. Dates are
// calendar strings and durations are minutes; both are converted to the
// library's model before building.
type invoiceFile struct {
	Number  string          `json:"number"`
	Place   string          `json:"place"`
	Date    string          `json:"date,omitempty"` // YYYY-MM-DD; today when empty
	Client  facture.Client  `json:"client"`
	LawFirm facture.LawFirm `json:"lawFirm"`
	Fees    feesFile        `json:"fees"`
}

type feesFile struct {
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Entries    []entryFile     `json:"entries"`
}

type entryFile struct {
	Description string  `json:"description"`
	Minutes     float64 `json:"minutes"`
	Date        string  `json:"date"` // YYYY-MM-DD
}

func main() {
	in := flag.String("in", "", "invoice description JSON file (default: built-in sample)")
	out := flag.String("o", "invoice.pdf", "output PDF path")
	flag.Parse()

	inv, err := loadInvoice(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := render.NewAssembler().GenerateFile(*out, inv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("invoice %q written to %s\n", inv.Number, *out)
}

func loadInvoice(path string) (facture.Invoice, error) {
	if path == "" {
		return sampleInvoice(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return facture.Invoice{}, err
	}
	var file invoiceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return facture.Invoice{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return file.toInvoice()
}

func (f invoiceFile) toInvoice() (facture.Invoice, error) {
	issued := time.Now()
	if f.Date != "" {
		var err error
		issued, err = time.Parse(dateLayout, f.Date)
		if err != nil {
			return facture.Invoice{}, fmt.Errorf("invoice date: %w", err)
		}
	}

	entries := make([]facture.TimeEntry, 0, len(f.Fees.Entries))
	for _, e := range f.Fees.Entries {
		day, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return facture.Invoice{}, fmt.Errorf("entry %q date: %w", e.Description, err)
		}
		entries = append(entries, facture.TimeEntry{
			Description: e.Description,
			Duration:    time.Duration(e.Minutes * float64(time.Minute)),
			Date:        day,
		})
	}

	return facture.Invoice{
		Number: f.Number,
		Place:  f.Place,
		Date:   issued,
		Client: f.Client,
		Firm:   f.LawFirm,
		Fees: facture.FeeSchedule{
			Entries:    entries,
			HourlyRate: f.Fees.HourlyRate,
		},
	}, nil
}

func sampleInvoice() facture.Invoice {
	return facture.Invoice{
		Number: "2025-121",
		Place:  "Paris",
		Date:   time.Now(),
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
				{
					Description: "Courriel Mme : Projet LO",
					Duration:    11 * time.Minute,
					Date:        time.Date(2025, time.March, 24, 0, 0, 0, 0, time.UTC),
				},
				{
					Description: "Courriel Mme",
					Duration:    6 * time.Minute,
					Date:        time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC),
				},
				{
					Description: "Renvoi audience",
					Duration:    time.Hour,
					Date:        time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
				},
				{
					Description: "Préparation des conclusions",
					Duration:    3*time.Hour + 12*time.Minute,
					Date:        time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC),
				},
			},
		},
	}
}
