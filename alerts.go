package vitals

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Severity of an alert.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Danger  Severity = "danger"
)

// Alert is a user facing notice derived from aggregated metrics.
//
// ID is stable across calls so that a presentation layer can deduplicate alerts.
type Alert struct {
	ID            string   `json:"id"`
	Severity      Severity `json:"severity"`
	Title         string   `json:"title"`
	Message       string   `json:"message"`
	RelatedMetric string   `json:"relatedMetric"`
	Value         float64  `json:"value"`
}

// AlertCheck produces at most one alert.
//
// Check returns the metric value the alert is about, and whether the alert fires.
type AlertCheck struct {
	ID            string
	Severity      Severity
	Title         string
	RelatedMetric string
	Check         func(AggregatedMetrics) (float64, bool)
	// Message formats the alert message from the value returned by Check.
	Message func(float64) string
}

// GenerateAlerts runs DefaultAlertChecks over m.
func GenerateAlerts(m AggregatedMetrics) []Alert { return RunAlertChecks(DefaultAlertChecks(), m) }

// RunAlertChecks runs every check in order, and returns the alerts that fired.
func RunAlertChecks(checks []AlertCheck, m AggregatedMetrics) []Alert {
	alerts := []Alert{}
	for _, c := range checks {
		v, ok := c.Check(m)
		if !ok {
			continue
		}
		alerts = append(alerts, Alert{
			ID:            c.ID,
			Severity:      c.Severity,
			Title:         c.Title,
			Message:       c.Message(v),
			RelatedMetric: c.RelatedMetric,
			Value:         v,
		})
	}
	return alerts
}

// spending returns the expenses as a percentage of the income of the window.
func spending(m AggregatedMetrics) (float64, bool) {
	if m.Finance == nil || !m.Finance.TotalIncome.IsPositive() {
		return 0, false
	}
	ratio := m.Finance.TotalExpenses.Decimal().Div(m.Finance.TotalIncome.Decimal())
	return ratio.Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64(), true
}

// PercentOver returns how much the expenses exceed the income, in percent.
func PercentOver(m AggregatedMetrics) float64 {
	s, ok := spending(m)
	if !ok {
		return 0
	}
	return s - 100
}

// DefaultAlertChecks returns the fixed list of threshold checks.
func DefaultAlertChecks() []AlertCheck {
	return []AlertCheck{
		{
			ID: "low_sleep", Severity: Warning, Title: "Not enough sleep", RelatedMetric: "avgSleep",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Health == nil || m.Health.SleepDays == 0 {
					return 0, false
				}
				return m.Health.AvgSleep, m.Health.AvgSleep < 6
			},
			Message: func(v float64) string {
				return fmt.Sprintf("You slept %.1fh on average, aim for at least 7h.", v)
			},
		},
		{
			ID: "low_activity", Severity: Info, Title: "Low activity", RelatedMetric: "avgActivity",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Health == nil || m.Health.ActivityDays == 0 {
					return 0, false
				}
				return m.Health.AvgActivity, m.Health.AvgActivity < 2
			},
			Message: func(v float64) string {
				return fmt.Sprintf("Your average activity level is %.1f/5, a daily walk would help.", v)
			},
		},
		{
			ID: "health_danger", Severity: Danger, Title: "Health score is low", RelatedMetric: "avgHealthScore",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Health == nil {
					return 0, false
				}
				return m.Health.AvgHealthScore, m.Health.AvgHealthScore < 50
			},
			Message: func(v float64) string {
				return fmt.Sprintf("Your health score averages %.0f/100, sleep and nutrition need attention.", v)
			},
		},
		{
			ID: "health_great", Severity: Success, Title: "Great health", RelatedMetric: "avgHealthScore",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Health == nil {
					return 0, false
				}
				return m.Health.AvgHealthScore, m.Health.AvgHealthScore >= 80
			},
			Message: func(v float64) string {
				return fmt.Sprintf("Your health score averages %.0f/100, well done.", v)
			},
		},
		{
			ID: "mental_low", Severity: Warning, Title: "Mental score is low", RelatedMetric: "avgMentalScore",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Psychology == nil {
					return 0, false
				}
				return m.Psychology.AvgMentalScore, m.Psychology.AvgMentalScore < 40
			},
			Message: func(v float64) string {
				return fmt.Sprintf("Your mental score averages %.0f/100, take some time for yourself.", v)
			},
		},
		{
			ID: "high_stress", Severity: Warning, Title: "Frequent high stress", RelatedMetric: "highStressDays",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Psychology == nil {
					return 0, false
				}
				share := m.Psychology.Share(m.Psychology.HighStressDays) * 100
				return share, share > 50
			},
			Message: func(v float64) string {
				return fmt.Sprintf("You reported high stress on %.0f%% of the days.", v)
			},
		},
		{
			ID: "overspend", Severity: Danger, Title: "Overspending", RelatedMetric: "totalExpenses",
			Check: func(m AggregatedMetrics) (float64, bool) {
				s, ok := spending(m)
				return PercentOver(m), ok && s > 110
			},
			Message: func(v float64) string {
				return fmt.Sprintf("You spent %.0f%% more than you earned.", v)
			},
		},
		{
			ID: "expenses_exceed_income", Severity: Warning, Title: "Expenses exceed income", RelatedMetric: "totalExpenses",
			Check: func(m AggregatedMetrics) (float64, bool) {
				s, ok := spending(m)
				return PercentOver(m), ok && s > 100 && s <= 110
			},
			Message: func(v float64) string {
				return fmt.Sprintf("Your expenses are %.0f%% above your income.", v)
			},
		},
		{
			ID: "spending_without_income", Severity: Warning, Title: "Spending without income", RelatedMetric: "totalExpenses",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Finance == nil {
					return 0, false
				}
				f := m.Finance
				return f.TotalExpenses.Float(), f.TotalExpenses.IsPositive() && !f.TotalIncome.IsPositive()
			},
			Message: func(v float64) string {
				return fmt.Sprintf("You spent %s with no income recorded.", TRY(v))
			},
		},
		{
			ID: "savings_great", Severity: Success, Title: "Great savings rate", RelatedMetric: "savingsRate",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Finance == nil {
					return 0, false
				}
				return float64(m.Finance.SavingsRate), m.Finance.SavingsRate > 30
			},
			Message: func(v float64) string {
				return fmt.Sprintf("You saved %.0f%% of your income.", v)
			},
		},
		{
			ID: "investment_loss", Severity: Info, Title: "Investment loss", RelatedMetric: "investmentProfitLoss",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Finance == nil {
					return 0, false
				}
				return m.Finance.InvestmentProfitLoss.Float(), m.Finance.InvestmentProfitLoss.IsNegative()
			},
			Message: func(v float64) string {
				return fmt.Sprintf("Your claimed investments lost %s.", TRY(-v))
			},
		},
		{
			ID: "negative_net_worth", Severity: Danger, Title: "Negative net worth", RelatedMetric: "latestNetWorth",
			Check: func(m AggregatedMetrics) (float64, bool) {
				if m.Finance == nil {
					return 0, false
				}
				return m.Finance.LatestNetWorth.Float(), m.Finance.LatestNetWorth.IsNegative()
			},
			Message: func(v float64) string {
				return fmt.Sprintf("Your net worth is %s.", TRY(v))
			},
		},
	}
}
