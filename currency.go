package vitals

import (
	"time"

	"github.com/etnz/vitals/date"
	"github.com/shopspring/decimal"
)

// ExchangeRate is a rate obtained from the exchange-rate service.
//
// Rate is the amount of primary currency for one unit of secondary currency (TRY per USD),
// as published by the rate sources.
type ExchangeRate struct {
	Rate      decimal.Decimal `json:"rate"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source,omitempty"`
	// Stale is true when the rate is older than the cache TTL (the source was unavailable).
	Stale bool `json:"stale,omitempty"`
}

// Snapshot returns the rate as stored on a record written now.
func (r ExchangeRate) Snapshot() RateSnapshot {
	return RateSnapshot{Rate: r.Rate, On: date.FromTime(r.Timestamp)}
}

// ToSecondary converts a primary amount with this rate.
func (r ExchangeRate) ToSecondary(m Money) Money { return r.Snapshot().ToSecondary(m) }

// RateSnapshot is the rate, and the day of that rate, used when a money record was written.
//
// It is stored with the record and never recomputed: later rate changes do not alter the
// secondary amounts of historical records.
type RateSnapshot struct {
	Rate decimal.Decimal `json:"rate"`
	On   date.Date       `json:"rateDate"`
}

// ToSecondary converts a primary amount with the snapshot rate.
func (s RateSnapshot) ToSecondary(m Money) Money {
	return M(Convert(m.value, s.Rate), Secondary)
}

// Convert divides amount by rate, rounded half away from zero to 2 decimals.
//
// A rate <= 0 converts to 0: there is never a division by zero.
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(rate).Round(2)
}

// FormatTRY formats a primary amount, like "₺1,234.56".
func FormatTRY(amount decimal.Decimal) string { return TRY(amount).String() }

// FormatUSD formats a secondary amount, like "$1,234.56".
func FormatUSD(amount decimal.Decimal) string { return USD(amount).String() }

// FormatDual formats a primary amount followed by its secondary value.
func FormatDual(primary, secondary Money) string {
	return primary.String() + " (" + secondary.String() + ")"
}
