package vitals

import (
	"cmp"
	"slices"

	"github.com/etnz/vitals/date"
	"github.com/shopspring/decimal"
)

// NetWorthSnapshot is the cumulated state right after the events of a day.
type NetWorthSnapshot struct {
	On       date.Date `json:"date"`
	Income   Money     `json:"income"`
	Expenses Money     `json:"expenses"`
	// Locked is the capital of the investments active at the end of the day.
	Locked Money `json:"locked"`
	// Realized is the capital plus P/L returned by the investments claimed so far.
	Realized Money `json:"realized"`
	Net      Money `json:"net"`
	// ChangePercent is the change of Net relative to the previous snapshot.
	ChangePercent Percent `json:"changePercent"`
}

// NetWorthSummary is the point-in-time state after every record.
type NetWorthSummary struct {
	AsOf            date.Date `json:"asOf"`
	TotalIncome     Money     `json:"totalIncome"`
	TotalExpenses   Money     `json:"totalExpenses"`
	LockedCapital   Money     `json:"lockedCapital"`
	RealizedReturns Money     `json:"realizedReturns"`
	RealizedPL      Money     `json:"realizedPl"`
	NetWorth        Money     `json:"netWorth"`
	// NetWorthUSD is computed from the secondary amounts stored on each record.
	NetWorthUSD   Money   `json:"netWorthUsd"`
	ChangePercent Percent `json:"changePercent"`
	Active        int     `json:"activeInvestments"`
	Claimed       int     `json:"claimedInvestments"`
}

// NetWorth is the summary and the complete daily cumulative series.
type NetWorth struct {
	Summary   NetWorthSummary    `json:"summary"`
	Snapshots []NetWorthSnapshot `json:"snapshots"`
}

type flowKind int

const (
	flowIncome flowKind = iota
	flowExpense
	flowInvest
	flowClaim
)

type flow struct {
	on     date.Date
	kind   flowKind
	amount decimal.Decimal // principal for investments
	pl     decimal.Decimal
}

// CalculateNetWorth computes the net worth of the given records.
//
//	net = Σincome − Σexpenses − Σ(active principal) + Σ(claimed principal + realized P/L)
//
// An investment contributes two events: its creation, locking its principal, and its
// claim, releasing the principal plus P/L. There is one snapshot per distinct date with
// at least one event. No records is a well defined net worth of 0. An investment with a
// claimed status but no claim time is still active.
func CalculateNetWorth(incomes []Income, expenses []Expense, investments []Investment) NetWorth {
	flows := make([]flow, 0, len(incomes)+len(expenses)+2*len(investments))
	s := NetWorthSummary{
		TotalIncome:     TRY(0),
		TotalExpenses:   TRY(0),
		LockedCapital:   TRY(0),
		RealizedReturns: TRY(0),
		RealizedPL:      TRY(0),
		NetWorth:        TRY(0),
		NetWorthUSD:     USD(0),
	}
	usd := decimal.Zero
	for _, i := range incomes {
		flows = append(flows, flow{on: i.On, kind: flowIncome, amount: i.Amount.value})
		usd = usd.Add(i.AmountUSD.value)
	}
	for _, e := range expenses {
		flows = append(flows, flow{on: e.On, kind: flowExpense, amount: e.Amount.value})
		usd = usd.Sub(e.AmountUSD.value)
	}
	for _, inv := range investments {
		flows = append(flows, flow{on: inv.On, kind: flowInvest, amount: inv.Invested.value})
		if inv.IsClaimed() {
			flows = append(flows, flow{on: inv.ClaimDate(), kind: flowClaim, amount: inv.Invested.value, pl: inv.RealizedPL.value})
			usd = usd.Add(inv.InvestedUSD.value).Add(inv.RealizedPLUSD.value)
			s.Claimed++
		} else {
			usd = usd.Sub(inv.InvestedUSD.value)
			s.Active++
		}
	}
	// kinds break ties so that an investment created and claimed the same day is
	// replayed in order.
	slices.SortStableFunc(flows, func(a, b flow) int {
		return cmp.Or(a.on.Compare(b.on), cmp.Compare(a.kind, b.kind))
	})

	var income, spent, locked, realized, pl decimal.Decimal
	var snapshots []NetWorthSnapshot
	for i, f := range flows {
		switch f.kind {
		case flowIncome:
			income = income.Add(f.amount)
		case flowExpense:
			spent = spent.Add(f.amount)
		case flowInvest:
			locked = locked.Add(f.amount)
		case flowClaim:
			locked = locked.Sub(f.amount)
			realized = realized.Add(f.amount).Add(f.pl)
			pl = pl.Add(f.pl)
		}
		if i+1 < len(flows) && flows[i+1].on == f.on {
			continue // not the last event of the day
		}
		net := income.Sub(spent).Sub(locked).Add(realized)
		snap := NetWorthSnapshot{
			On:       f.on,
			Income:   TRY(income),
			Expenses: TRY(spent),
			Locked:   TRY(locked),
			Realized: TRY(realized),
			Net:      TRY(net),
		}
		if n := len(snapshots); n > 0 {
			snap.ChangePercent = ChangePercent(snapshots[n-1].Net, snap.Net)
		}
		snapshots = append(snapshots, snap)
	}

	if n := len(snapshots); n > 0 {
		last := snapshots[n-1]
		s.AsOf = last.On
		s.TotalIncome = last.Income
		s.TotalExpenses = last.Expenses
		s.LockedCapital = last.Locked
		s.RealizedReturns = last.Realized
		s.RealizedPL = TRY(pl)
		s.NetWorth = last.Net
		s.ChangePercent = last.ChangePercent
	}
	s.NetWorthUSD = USD(usd)
	return NetWorth{Summary: s, Snapshots: snapshots}
}

// NetWorth computes the net worth of every money record in the journal.
func (j *Journal) NetWorth() NetWorth {
	return CalculateNetWorth(j.Incomes, j.Expenses, j.Investments)
}

// ChangePercent returns (current − previous) / previous × 100, or 0 when previous is 0.
//
// It is a percentage of the prior total, not of the income.
func ChangePercent(previous, current Money) Percent {
	if previous.IsZero() {
		return 0
	}
	change := current.value.Sub(previous.value).Div(previous.value).Mul(decimal.NewFromInt(100))
	return Percent(change.InexactFloat64())
}
