package vitals

import (
	"slices"
	"testing"

	"github.com/etnz/vitals/date"
)

func alertIDs(alerts []Alert) []string {
	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = a.ID
	}
	return ids
}

func TestGenerateAlertsOverspend(t *testing.T) {
	m := AggregatedMetrics{Finance: &FinanceMetrics{TotalIncome: TRY(10000), TotalExpenses: TRY(12000), SavingsRate: -20}}
	alerts := GenerateAlerts(m)
	if got := alertIDs(alerts); !slices.Equal(got, []string{"overspend"}) {
		t.Fatalf("GenerateAlerts() = %v, want [overspend]", got)
	}
	a := alerts[0]
	if a.Severity != Danger || a.Value != 20 || a.RelatedMetric != "totalExpenses" {
		t.Errorf("overspend alert = %+v, want a danger of 20%%", a)
	}
	if got := PercentOver(m); got != 20 {
		t.Errorf("PercentOver() = %v, want 20", got)
	}
}

func TestGenerateAlerts(t *testing.T) {
	tests := []struct {
		name string
		m    AggregatedMetrics
		want []string
	}{
		{
			name: "nothing",
			want: []string{},
		},
		{
			name: "poor health",
			m:    AggregatedMetrics{Health: &HealthMetrics{Days: 5, AvgSleep: 5, SleepDays: 5, AvgActivity: 1.5, ActivityDays: 5, AvgHealthScore: 45}},
			want: []string{"low_sleep", "low_activity", "health_danger"},
		},
		{
			name: "unlogged sleep is not low sleep",
			m:    AggregatedMetrics{Health: &HealthMetrics{Days: 1, AvgHealthScore: 70}},
			want: []string{},
		},
		{
			name: "great health",
			m:    AggregatedMetrics{Health: &HealthMetrics{Days: 5, AvgSleep: 8, SleepDays: 5, AvgActivity: 3, ActivityDays: 5, AvgHealthScore: 80}},
			want: []string{"health_great"},
		},
		{
			name: "stressed",
			m:    AggregatedMetrics{Psychology: &PsychologyMetrics{Days: 4, AvgMentalScore: 30, HighStressDays: 3}},
			want: []string{"mental_low", "high_stress"},
		},
		{
			name: "half stressed",
			m:    AggregatedMetrics{Psychology: &PsychologyMetrics{Days: 4, AvgMentalScore: 60, HighStressDays: 2}},
			want: []string{},
		},
		{
			name: "slightly over",
			m:    AggregatedMetrics{Finance: &FinanceMetrics{TotalIncome: TRY(10000), TotalExpenses: TRY(10500), SavingsRate: -5}},
			want: []string{"expenses_exceed_income"},
		},
		{
			name: "exactly 110%",
			m:    AggregatedMetrics{Finance: &FinanceMetrics{TotalIncome: TRY(10000), TotalExpenses: TRY(11000), SavingsRate: -10}},
			want: []string{"expenses_exceed_income"},
		},
		{
			name: "no income",
			m:    AggregatedMetrics{Finance: &FinanceMetrics{TotalIncome: TRY(0), TotalExpenses: TRY(500)}},
			want: []string{"spending_without_income"},
		},
		{
			name: "saver with losses",
			m: AggregatedMetrics{Finance: &FinanceMetrics{
				TotalIncome: TRY(10000), TotalExpenses: TRY(5000), SavingsRate: 50,
				InvestmentProfitLoss: TRY(-300), LatestNetWorth: TRY(-1000),
			}},
			want: []string{"savings_great", "investment_loss", "negative_net_worth"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alertIDs(GenerateAlerts(tt.m)); !slices.Equal(got, tt.want) {
				t.Errorf("GenerateAlerts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateAlertsFromJournal(t *testing.T) {
	m, err := Aggregate(fixture(t), date.New(2025, 3, 31))
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	want := []string{"health_great", "overspend", "investment_loss"}
	first := GenerateAlerts(m)
	if got := alertIDs(first); !slices.Equal(got, want) {
		t.Errorf("GenerateAlerts() = %v, want %v", got, want)
	}
	// alerts are stable across calls, and do not depend on the avatar rules.
	CalculateAvatarState(m)
	if second := GenerateAlerts(m); !slices.Equal(first, second) {
		t.Errorf("GenerateAlerts() is not stable:\n%v\n%v", first, second)
	}
}

func TestAlertChecks(t *testing.T) {
	ids := make(map[string]bool)
	for _, c := range DefaultAlertChecks() {
		if ids[c.ID] {
			t.Errorf("alert %q is defined twice", c.ID)
		}
		ids[c.ID] = true
		if c.Message == nil || c.Check == nil || c.Title == "" || c.RelatedMetric == "" {
			t.Errorf("alert %q is incomplete", c.ID)
		}
	}
}
