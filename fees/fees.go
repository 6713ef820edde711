// Package fees converts a fee schedule's raw time entries into
// display-ready line amounts and aggregate totals.
//
// All amounts are decimal values carried at full precision; rounding to
// two decimals is a presentation concern and happens in the compose
// package, never here. Durations are decomposed to whole hours and
// minutes by truncation: leftover seconds are dropped, not rounded up.
package fees

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lvillar/facture"
)

// VATRate is the fixed value-added tax rate applied to the subtotal.
var VATRate = decimal.RequireFromString("0.20")

var secondsPerHour = decimal.NewFromInt(3600)

// LineItem is the computed view of a single time entry.
type LineItem struct {
	Entry   facture.TimeEntry
	Hours   int
	Minutes int
	Price   decimal.Decimal // unrounded: rate * seconds / 3600
}

// Totals aggregates the whole schedule. Subtotal is the sum of the
// unrounded per-entry prices, so it does not drift with entry count.
type Totals struct {
	Hours    int
	Minutes  int
	Subtotal decimal.Decimal // HT
	VAT      decimal.Decimal
	Total    decimal.Decimal // TTC
}

// SplitDuration decomposes a non-negative duration into whole hours and
// whole minutes. Seconds are truncated.
func SplitDuration(d time.Duration) (hours, minutes int) {
	secs := int64(d / time.Second)
	return int(secs / 3600), int(secs % 3600 / 60)
}

// Price computes the unrounded amount for one entry at the given hourly
// rate: rate * duration in hours.
func Price(d time.Duration, rate decimal.Decimal) decimal.Decimal {
	secs := decimal.NewFromInt(int64(d / time.Second))
	return rate.Mul(secs).Div(secondsPerHour)
}

// Compute derives the per-entry line items and the aggregate totals for
// a schedule. Entry order is preserved. The schedule is assumed to have
// passed validation; negative values are rejected at construction time.
func Compute(s facture.FeeSchedule) ([]LineItem, Totals) {
	items := make([]LineItem, 0, len(s.Entries))
	subtotal := decimal.Zero
	var totalSeconds int64

	for _, e := range s.Entries {
		h, m := SplitDuration(e.Duration)
		p := Price(e.Duration, s.HourlyRate)
		items = append(items, LineItem{Entry: e, Hours: h, Minutes: m, Price: p})
		subtotal = subtotal.Add(p)
		totalSeconds += int64(e.Duration / time.Second)
	}

	vat := subtotal.Mul(VATRate)
	t := Totals{
		Hours:    int(totalSeconds / 3600),
		Minutes:  int(totalSeconds % 3600 / 60),
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal.Add(vat),
	}
	return items, t
}
