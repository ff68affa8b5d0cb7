package vitals

import (
	"fmt"
	"time"

	"github.com/etnz/vitals/date"
	"github.com/shopspring/decimal"
)

// Income is money received, in primary currency.
type Income struct {
	ID        string       `json:"id"`
	On        date.Date    `json:"date"`
	Amount    Money        `json:"amount"`
	AmountUSD Money        `json:"amountUsd"`
	Rate      RateSnapshot `json:"rate"`
	Category  string       `json:"category,omitempty"`
	Note      string       `json:"note,omitempty"`
}

// NewIncome returns an income of amount (primary currency) converted with rate.
func NewIncome(id string, on date.Date, amount decimal.Decimal, rate ExchangeRate, category string) (Income, error) {
	snap := rate.Snapshot()
	i := Income{ID: id, On: on, Amount: TRY(amount), AmountUSD: snap.ToSecondary(TRY(amount)), Rate: snap, Category: category}
	return i, i.Validate()
}

// Validate checks that the amount is not negative.
func (i Income) Validate() error { return checkAmount(i.Amount.value) }

func checkAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return invalid("amount", amount, "must not be negative")
	}
	return nil
}

// Expense is money spent, in primary currency.
type Expense struct {
	ID        string       `json:"id"`
	On        date.Date    `json:"date"`
	Amount    Money        `json:"amount"`
	AmountUSD Money        `json:"amountUsd"`
	Rate      RateSnapshot `json:"rate"`
	Category  string       `json:"category,omitempty"`
	Note      string       `json:"note,omitempty"`
}

// NewExpense returns an expense of amount (primary currency) converted with rate.
func NewExpense(id string, on date.Date, amount decimal.Decimal, rate ExchangeRate, category string) (Expense, error) {
	snap := rate.Snapshot()
	e := Expense{ID: id, On: on, Amount: TRY(amount), AmountUSD: snap.ToSecondary(TRY(amount)), Rate: snap, Category: category}
	return e, e.Validate()
}

// Validate checks that the amount is not negative.
func (e Expense) Validate() error { return checkAmount(e.Amount.value) }

// InvestmentStatus is the lifecycle of an investment: active, then claimed once.
type InvestmentStatus string

const (
	// Active investments lock their capital.
	Active InvestmentStatus = "active"
	// Claimed investments returned their capital plus the realized profit or loss.
	Claimed InvestmentStatus = "claimed"
)

// Investment is capital put in an asset.
type Investment struct {
	ID          string           `json:"id"`
	On          date.Date        `json:"date"`
	Asset       string           `json:"asset,omitempty"`
	Invested    Money            `json:"invested"`
	InvestedUSD Money            `json:"investedUsd"`
	Rate        RateSnapshot     `json:"rate"`
	Status      InvestmentStatus `json:"status"`

	// Claim fields, only set once Status is Claimed.
	ClaimedAt     time.Time    `json:"claimedAt,omitzero"`
	RealizedPL    Money        `json:"realizedPl"`
	RealizedPLUSD Money        `json:"realizedPlUsd"`
	ClaimRate     RateSnapshot `json:"claimRate"`
}

// NewInvestment returns an active investment of amount (primary currency) converted with rate.
func NewInvestment(id string, on date.Date, asset string, amount decimal.Decimal, rate ExchangeRate) (Investment, error) {
	snap := rate.Snapshot()
	inv := Investment{
		ID:          id,
		On:          on,
		Asset:       asset,
		Invested:    TRY(amount),
		InvestedUSD: snap.ToSecondary(TRY(amount)),
		Rate:        snap,
		Status:      Active,
	}
	return inv, inv.Validate()
}

// Validate checks the principal and, for a claimed investment, its claim.
func (inv Investment) Validate() error {
	if !inv.Invested.value.IsPositive() {
		return invalid("invested", inv.Invested.value, "must be positive")
	}
	switch inv.Status {
	case Active:
		return nil
	case Claimed:
		return inv.checkClaim(inv.ClaimedAt, inv.RealizedPL.value)
	default:
		return invalid("status", string(inv.Status), "want active|claimed")
	}
}

// checkClaim checks a claim at 'at' with a realized P/L of pl, whatever the current status.
func (inv Investment) checkClaim(at time.Time, pl decimal.Decimal) error {
	if at.IsZero() {
		return invalid("claimedAt", "", "is required")
	}
	if date.FromTime(at).Before(inv.On) {
		return invalid("claimedAt", at.Format(time.RFC3339), "before the investment date "+inv.On.String())
	}
	if pl.Neg().GreaterThan(inv.Invested.value) {
		return invalid("realizedPl", pl, "loss exceeds the invested capital")
	}
	return nil
}

// IsClaimed reports whether the investment was claimed. A claimed status without a claim
// time is not a claim.
func (inv Investment) IsClaimed() bool {
	return inv.Status == Claimed && !inv.ClaimedAt.IsZero()
}

// ClaimDate is the day of the claim, or the zero date for an active investment.
func (inv Investment) ClaimDate() date.Date {
	if !inv.IsClaimed() {
		return date.Date{}
	}
	return date.FromTime(inv.ClaimedAt)
}

// Returned is the capital plus realized P/L for a claimed investment, zero otherwise.
func (inv Investment) Returned() Money {
	if !inv.IsClaimed() {
		return TRY(0)
	}
	return inv.Invested.Add(inv.RealizedPL)
}

// ReturnedUSD is Returned, in secondary currency.
func (inv Investment) ReturnedUSD() Money {
	if !inv.IsClaimed() {
		return USD(0)
	}
	return inv.InvestedUSD.Add(inv.RealizedPLUSD)
}

// Claim returns the investment claimed at 'at' with a realized profit (or loss when
// negative) of pl, converted with rate.
//
// An investment is claimed exactly once, it never reverts to active.
func (inv Investment) Claim(at time.Time, pl decimal.Decimal, rate ExchangeRate) (Investment, error) {
	if inv.Status == Claimed {
		return inv, fmt.Errorf("%w: %s on %v", ErrAlreadyClaimed, inv.ID, inv.ClaimDate())
	}
	if err := inv.checkClaim(at, pl); err != nil {
		return inv, err
	}
	snap := rate.Snapshot()
	inv.Status = Claimed
	inv.ClaimedAt = at
	inv.RealizedPL = TRY(pl)
	inv.RealizedPLUSD = snap.ToSecondary(TRY(pl))
	inv.ClaimRate = snap
	return inv, nil
}
