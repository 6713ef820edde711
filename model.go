// Package facture composes French legal invoices and renders them as
// paginated PDF documents.
//
// The package holds the input data model: a Client, a LawFirm and a
// FeeSchedule of timed service entries, grouped with the presentation
// parameters into an Invoice. Records are validated once, before any
// build step runs, and are treated as read-only for the whole build.
//
// The pipeline lives in the subpackages: fees computes line amounts and
// totals, style resolves text styles, compose assembles the ordered
// content blocks, and render paginates them onto Letter pages with a
// repeating footer.
package facture

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Gender is the client's gender tag, used to pick the honorific.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Honorific returns the French courtesy title for the tag.
// Any value other than the two defined tags is rejected.
func (g Gender) Honorific() (string, error) {
	switch g {
	case GenderMale:
		return "Monsieur", nil
	case GenderFemale:
		return "Madame", nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGender, string(g))
}

// Client is the invoice recipient.
type Client struct {
	Name    string `json:"name"`
	Gender  Gender `json:"gender"` // "M" or "F"
	Address string `json:"address"`
	ZipCode string `json:"zipCode"`
	City    string `json:"city"`
}

// Validate checks that the client can be rendered on an invoice.
func (c Client) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: client name", ErrMissingField)
	}
	if _, err := c.Gender.Honorific(); err != nil {
		return err
	}
	return nil
}

// LawFirm is the issuing firm. The collaborator list may be empty, in
// which case the collaborators block is omitted from the document.
type LawFirm struct {
	PrincipalLawyer string   `json:"principalLawyer"`
	Collaborators   []string `json:"collaborators,omitempty"`
	Address         string   `json:"address"`
	ZipCode         string   `json:"zipCode"`
	City            string   `json:"city"`
	Phone           string   `json:"phone"`
	Mail            string   `json:"mail"`
	Website         string   `json:"website"`
	VATNumber       string   `json:"vatNumber"`
	SIRETNumber     string   `json:"siretNumber"`
}

// Validate checks the fields the document and footer cannot do without.
func (f LawFirm) Validate() error {
	if f.PrincipalLawyer == "" {
		return fmt.Errorf("%w: principal lawyer", ErrMissingField)
	}
	if f.Address == "" || f.ZipCode == "" || f.City == "" {
		return fmt.Errorf("%w: law firm address", ErrMissingField)
	}
	return nil
}

// TimeEntry is a single timed service: what was done, for how long, when.
type TimeEntry struct {
	Description string        `json:"description"`
	Duration    time.Duration `json:"-"`
	Date        time.Time     `json:"-"`
}

// Validate rejects negative durations.
func (e TimeEntry) Validate() error {
	if e.Duration < 0 {
		return fmt.Errorf("%w: %q (%s)", ErrNegativeDuration, e.Description, e.Duration)
	}
	return nil
}

// FeeSchedule is the list of entries billed at a single hourly rate.
type FeeSchedule struct {
	Entries    []TimeEntry     `json:"entries"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
}

// Validate rejects a negative rate and any invalid entry.
func (s FeeSchedule) Validate() error {
	if s.HourlyRate.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeRate, s.HourlyRate)
	}
	for _, e := range s.Entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Invoice groups the three input records with the presentation
// parameters for one document build.
type Invoice struct {
	Number string    `json:"number"`
	Place  string    `json:"place"`
	Date   time.Time `json:"-"`

	Client Client      `json:"client"`
	Firm   LawFirm     `json:"lawFirm"`
	Fees   FeeSchedule `json:"fees"`
}

// Validate runs all construction-time checks. It is called by the
// content builder before any block is produced; nothing is coerced.
func (inv Invoice) Validate() error {
	if inv.Number == "" {
		return fmt.Errorf("%w: invoice number", ErrMissingField)
	}
	if inv.Place == "" {
		return fmt.Errorf("%w: issuing place", ErrMissingField)
	}
	if err := inv.Client.Validate(); err != nil {
		return err
	}
	if err := inv.Firm.Validate(); err != nil {
		return err
	}
	return inv.Fees.Validate()
}
