package vitals

// DefaultAvatarRules returns the rule table of the avatar.
//
// Rules only read the metrics. They are evaluated uniformly, the order of the table only
// matters to break priority ties.
func DefaultAvatarRules() []AvatarRule {
	return []AvatarRule{
		{
			ID: "health_critical", Priority: 100, Status: Critical,
			Energy: -20, Balance: -10,
			When: func(m AggregatedMetrics) bool { return m.Health != nil && m.Health.AvgHealthScore < 40 },
		},
		{
			ID: "burnout", Priority: 90, Status: Exhausted,
			Energy: -15, Morale: -10,
			When: func(m AggregatedMetrics) bool {
				return m.Psychology != nil && m.Psychology.Share(m.Psychology.ExhaustedDays) >= 0.4
			},
		},
		{
			ID: "overspending", Priority: 80, Status: Struggling,
			Morale: -5, Balance: -20,
			When: func(m AggregatedMetrics) bool {
				return m.Finance != nil && m.Finance.TotalExpenses.GreaterThan(m.Finance.TotalIncome)
			},
		},
		{
			ID: "high_stress", Priority: 70, Status: Stressed,
			Morale: -15, Balance: -10,
			When: func(m AggregatedMetrics) bool {
				return m.Psychology != nil && m.Psychology.Share(m.Psychology.HighStressDays) > 0.5
			},
		},
		{
			ID: "negative_net_worth", Priority: 65, Status: Struggling,
			Balance: -15,
			When: func(m AggregatedMetrics) bool { return m.Finance != nil && m.Finance.LatestNetWorth.IsNegative() },
		},
		{
			ID: "poor_sleep", Priority: 60, Status: Tired,
			Energy: -15, Balance: -5,
			When: func(m AggregatedMetrics) bool { return m.Health != nil && m.Health.SleepDays > 0 && m.Health.AvgSleep < 6 },
		},
		{
			ID: "thriving", Priority: 55, Status: Thriving,
			Energy: 10, Morale: 10, Balance: 10,
			When: func(m AggregatedMetrics) bool {
				return m.Health != nil && m.Psychology != nil &&
					m.Health.AvgHealthScore >= 80 && m.Psychology.AvgMentalScore >= 80
			},
		},
		{
			ID: "saving_well", Priority: 50, Status: Thriving,
			Morale: 5, Balance: 15,
			When: func(m AggregatedMetrics) bool { return m.Finance != nil && m.Finance.SavingsRate >= 30 },
		},
		{
			ID: "motivated", Priority: 40, Status: Energetic,
			Morale: 15,
			When: func(m AggregatedMetrics) bool {
				return m.Psychology != nil && m.Psychology.Share(m.Psychology.HighMotivationDays) >= 0.5
			},
		},
		{
			ID: "restful_sleep",
			Energy: 10,
			When: func(m AggregatedMetrics) bool {
				return m.Health != nil && m.Health.SleepDays > 0 && m.Health.AvgSleep >= 7 && m.Health.AvgSleep <= 9
			},
		},
		{
			ID: "sedentary",
			Energy: -10, Balance: -5,
			When: func(m AggregatedMetrics) bool { return m.Health != nil && m.Health.ActivityDays > 0 && m.Health.AvgActivity < 2 },
		},
		{
			ID: "active",
			Energy: 10, Morale: 5,
			When: func(m AggregatedMetrics) bool { return m.Health != nil && m.Health.ActivityDays > 0 && m.Health.AvgActivity >= 3 },
		},
		{
			ID: "unmotivated",
			Morale: -10,
			When: func(m AggregatedMetrics) bool {
				return m.Psychology != nil && m.Psychology.Share(m.Psychology.LowMotivationDays) >= 0.5
			},
		},
		{
			ID: "investment_gain",
			Morale: 5, Balance: 5,
			When: func(m AggregatedMetrics) bool { return m.Finance != nil && m.Finance.InvestmentProfitLoss.IsPositive() },
		},
	}
}
