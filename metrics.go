package vitals

import (
	"github.com/etnz/vitals/date"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// WindowDays is the length of the rolling window of the aggregated metrics.
const WindowDays = 30

// HealthMetrics aggregates the health logs of a window, one value per day (the last log of
// a day wins).
type HealthMetrics struct {
	Days           int     `json:"days"`
	AvgSleep       float64 `json:"avgSleep"`
	SleepDays      int     `json:"sleepDays"`
	AvgActivity    float64 `json:"avgActivity"`
	ActivityDays   int     `json:"activityDays"`
	AvgHealthScore float64 `json:"avgHealthScore"`
	Latest         int     `json:"latestHealthScore"`
}

// PsychologyMetrics aggregates the complete psychology logs of a window.
type PsychologyMetrics struct {
	Days               int     `json:"days"`
	AvgMentalScore     float64 `json:"avgMentalScore"`
	Latest             int     `json:"latestMentalScore"`
	HighStressDays     int     `json:"highStressDays"`
	ExhaustedDays      int     `json:"exhaustedDays"`
	HighMotivationDays int     `json:"highMotivationDays"`
	LowMotivationDays  int     `json:"lowMotivationDays"`
	// Incomplete counts the days skipped because a field was missing.
	Incomplete int `json:"incompleteDays"`
}

// Share returns n as a fraction of the scored days.
func (p PsychologyMetrics) Share(n int) float64 {
	if p.Days == 0 {
		return 0
	}
	return float64(n) / float64(p.Days)
}

// FinanceMetrics aggregates the money records of a window.
type FinanceMetrics struct {
	TotalIncome   Money `json:"totalIncome"`
	TotalExpenses Money `json:"totalExpenses"`
	NetCashFlow   Money `json:"netCashFlow"`
	// LatestNetWorth is computed over the full history up to the end of the window.
	LatestNetWorth Money `json:"latestNetWorth"`
	// InvestmentProfitLoss is the P/L realized by the claims inside the window.
	InvestmentProfitLoss Money `json:"investmentProfitLoss"`
	// SavingsRate is NetCashFlow as a percentage of TotalIncome, 0 without income.
	SavingsRate Percent `json:"savingsRate"`
}

// AggregatedMetrics is the rollup the avatar and the alerts are derived from.
//
// Each part is nil when no record contributed to it in the window.
type AggregatedMetrics struct {
	Window     date.Range         `json:"window"`
	Health     *HealthMetrics     `json:"health,omitempty"`
	Psychology *PsychologyMetrics `json:"psychology,omitempty"`
	Finance    *FinanceMetrics    `json:"finance,omitempty"`
	// Daily lists the scored days of the window, oldest first.
	Daily []DailyScores `json:"daily,omitempty"`
}

// DailyScores are the scores of one day. A score is nil when the day has none.
type DailyScores struct {
	On     date.Date `json:"date"`
	Health *int      `json:"healthScore"`
	Mental *int      `json:"mentalScore"`
}

// daily merges the daily health and mental scores.
func daily(health, mental *date.History[float64]) []DailyScores {
	var days []DailyScores
	for on := range date.Iterate(health, mental) {
		d := DailyScores{On: on}
		if v, ok := health.Get(on); ok {
			d.Health = scorePtr(v)
		}
		if v, ok := mental.Get(on); ok {
			d.Mental = scorePtr(v)
		}
		days = append(days, d)
	}
	return days
}

func scorePtr(v float64) *int {
	i := int(v)
	return &i
}

// Aggregate rolls up the last WindowDays days ending on 'on' with the Canonical scheme.
func Aggregate(j *Journal, on date.Date) (AggregatedMetrics, error) {
	return Canonical().Aggregate(j, date.Last(WindowDays, on))
}

// Aggregate rolls up the journal records inside window.
//
// Health scores use the trailing activity of the full journal, so that the first days of
// the window still see their history. An invalid record returns an error.
func (s Scheme) Aggregate(j *Journal, window date.Range) (AggregatedMetrics, error) {
	m := AggregatedMetrics{Window: window}

	health, healthScores, err := s.aggregateHealth(j, window)
	if err != nil {
		return m, err
	}
	m.Health = health

	psy, mentalScores, err := s.aggregatePsychology(j.Window(window).Psychology)
	if err != nil {
		return m, err
	}
	m.Psychology = psy
	m.Daily = daily(healthScores, mentalScores)

	m.Finance = aggregateFinance(j, window)
	return m, nil
}

// RecentActivity returns the activity logged on the n days before 'on', oldest first.
// The history stops at the first day without a log.
func RecentActivity(activity *date.History[int], on date.Date, n int) []ActivityLevel {
	var recent []ActivityLevel
	for i := 1; i <= n; i++ {
		a, ok := activity.Get(on.Add(-i))
		if !ok {
			break
		}
		recent = append(recent, ActivityLevel(a))
	}
	// reverse into chronological order
	for l, r := 0, len(recent)-1; l < r; l, r = l+1, r-1 {
		recent[l], recent[r] = recent[r], recent[l]
	}
	return recent
}

// Activity returns the activity levels logged in the journal.
func (j *Journal) Activity() *date.History[int] {
	activity := new(date.History[int])
	for _, in := range j.Health {
		if in.Activity != 0 {
			activity.Append(in.On, int(in.Activity))
		}
	}
	return activity
}

// aggregateHealth also returns the daily Health Scores.
func (s Scheme) aggregateHealth(j *Journal, window date.Range) (*HealthMetrics, *date.History[float64], error) {
	scores := new(date.History[float64])
	days := make(map[date.Date]DailyHealthInput)
	activity := j.Activity()
	for _, in := range j.Health {
		if window.Contains(in.On) {
			days[in.On] = in
		}
	}
	if len(days) == 0 {
		return nil, scores, nil
	}

	trailing := max(s.Overtraining.Days, 1)
	sleep, levels := new(date.History[float64]), new(date.History[float64])
	for on, in := range days {
		in.RecentActivity = RecentActivity(activity, on, trailing)
		b, err := s.HealthScore(in)
		if err != nil {
			return nil, nil, err
		}
		scores.Append(on, float64(b.FinalScore))
		if in.SleepHours != nil {
			sleep.Append(on, *in.SleepHours)
		}
		if in.Activity != 0 {
			levels.Append(on, float64(in.Activity))
		}
	}
	_, latest := scores.Latest()
	return &HealthMetrics{
		Days:           scores.Len(),
		AvgSleep:       mean(sleep),
		SleepDays:      sleep.Len(),
		AvgActivity:    mean(levels),
		ActivityDays:   levels.Len(),
		AvgHealthScore: mean(scores),
		Latest:         int(latest),
	}, scores, nil
}

// aggregatePsychology also returns the daily Mental Scores.
func (s Scheme) aggregatePsychology(inputs []DailyPsychologyInput) (*PsychologyMetrics, *date.History[float64], error) {
	scores := new(date.History[float64])
	if len(inputs) == 0 {
		return nil, scores, nil
	}
	// last log of a day wins, including an incomplete one.
	days := make(map[date.Date]DailyPsychologyInput)
	for _, in := range inputs {
		days[in.On] = in
	}
	p := new(PsychologyMetrics)
	for on, in := range days {
		b, ok, err := s.MentalScore(in)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			p.Incomplete++
			continue
		}
		scores.Append(on, float64(b.FinalScore))
		if in.Stress == StressHigh {
			p.HighStressDays++
		}
		if in.Fatigue == FatigueExhausted {
			p.ExhaustedDays++
		}
		switch in.Motivation {
		case MotivationHigh:
			p.HighMotivationDays++
		case MotivationLow:
			p.LowMotivationDays++
		}
	}
	if scores.Len() == 0 {
		// only incomplete days: there is no Mental Score to report.
		return nil, scores, nil
	}
	_, latest := scores.Latest()
	p.Days = scores.Len()
	p.AvgMentalScore = mean(scores)
	p.Latest = int(latest)
	return p, scores, nil
}

func aggregateFinance(j *Journal, window date.Range) *FinanceMetrics {
	w := j.Window(window)
	if len(w.Incomes) == 0 && len(w.Expenses) == 0 && len(w.Investments) == 0 {
		return nil
	}
	f := &FinanceMetrics{TotalIncome: TRY(0), TotalExpenses: TRY(0), InvestmentProfitLoss: TRY(0)}
	for _, i := range w.Incomes {
		f.TotalIncome = f.TotalIncome.Add(i.Amount)
	}
	for _, e := range w.Expenses {
		f.TotalExpenses = f.TotalExpenses.Add(e.Amount)
	}
	for _, inv := range w.Investments {
		if inv.IsClaimed() && window.Contains(inv.ClaimDate()) {
			f.InvestmentProfitLoss = f.InvestmentProfitLoss.Add(inv.RealizedPL)
		}
	}
	f.NetCashFlow = f.TotalIncome.Sub(f.TotalExpenses)
	if f.TotalIncome.IsPositive() {
		rate := f.NetCashFlow.value.Div(f.TotalIncome.value).Mul(decimal.NewFromInt(100))
		f.SavingsRate = Percent(rate.InexactFloat64())
	}
	f.LatestNetWorth = j.Upto(window.To).NetWorth().Summary.NetWorth
	return f
}

func mean(h *date.History[float64]) float64 {
	if h.Len() == 0 {
		return 0
	}
	return stat.Mean(h.Slice(), nil)
}
