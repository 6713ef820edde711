package facture

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestGenderHonorific(t *testing.T) {
	if got, err := GenderMale.Honorific(); err != nil || got != "Monsieur" {
		t.Errorf("GenderMale.Honorific() = %q, %v", got, err)
	}
	if got, err := GenderFemale.Honorific(); err != nil || got != "Madame" {
		t.Errorf("GenderFemale.Honorific() = %q, %v", got, err)
	}
	if _, err := Gender("X").Honorific(); !errors.Is(err, ErrInvalidGender) {
		t.Errorf("Gender(X).Honorific() error = %v, want ErrInvalidGender", err)
	}
	if _, err := Gender("").Honorific(); !errors.Is(err, ErrInvalidGender) {
		t.Errorf("empty gender accepted")
	}
}

func TestClientValidate(t *testing.T) {
	c := Client{Name: "John DOE", Gender: GenderMale}
	if err := c.Validate(); err != nil {
		t.Errorf("valid client rejected: %v", err)
	}

	c.Name = ""
	if err := c.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("nameless client error = %v, want ErrMissingField", err)
	}

	c = Client{Name: "John DOE", Gender: "?"}
	if err := c.Validate(); !errors.Is(err, ErrInvalidGender) {
		t.Errorf("bad gender error = %v, want ErrInvalidGender", err)
	}
}

func TestLawFirmValidate(t *testing.T) {
	f := LawFirm{PrincipalLawyer: "Jean-Pierre Machin", Address: "1 rue X", ZipCode: "75000", City: "Paris"}
	if err := f.Validate(); err != nil {
		t.Errorf("valid firm rejected: %v", err)
	}

	f.PrincipalLawyer = ""
	if err := f.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("firm without principal error = %v, want ErrMissingField", err)
	}

	f = LawFirm{PrincipalLawyer: "X", Address: "1 rue X", City: "Paris"}
	if err := f.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("firm without zip error = %v, want ErrMissingField", err)
	}
}

func TestFeeScheduleValidate(t *testing.T) {
	s := FeeSchedule{
		HourlyRate: decimal.NewFromInt(300),
		Entries:    []TimeEntry{{Description: "ok", Duration: time.Minute}},
	}
	if err := s.Validate(); err != nil {
		t.Errorf("valid schedule rejected: %v", err)
	}

	s.HourlyRate = decimal.NewFromInt(-300)
	if err := s.Validate(); !errors.Is(err, ErrNegativeRate) {
		t.Errorf("negative rate error = %v, want ErrNegativeRate", err)
	}

	s.HourlyRate = decimal.Zero
	s.Entries[0].Duration = -time.Second
	if err := s.Validate(); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("negative duration error = %v, want ErrNegativeDuration", err)
	}
}

func TestBuildErrorWrapping(t *testing.T) {
	underlying := errors.New("disk full")
	err := &BuildError{Op: "WriteFile", Err: underlying}

	if !errors.Is(err, underlying) {
		t.Error("BuildError does not unwrap to the underlying error")
	}
	if got := err.Error(); got != "facture.WriteFile: disk full" {
		t.Errorf("BuildError.Error() = %q", got)
	}
}
