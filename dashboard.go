package vitals

import "github.com/etnz/vitals/date"

// Dashboard is everything derived for one identity on one day.
type Dashboard struct {
	Identity string            `json:"identity"`
	On       date.Date         `json:"date"`
	Metrics  AggregatedMetrics `json:"metrics"`
	Avatar   AvatarState       `json:"avatar"`
	Alerts   []Alert           `json:"alerts"`
	NetWorth NetWorthSummary   `json:"netWorth"`
}

// BuildDashboard aggregates the journal over the window ending on 'on', with scheme s.
//
// Avatar and alerts are two independent passes over the same metrics.
func (s Scheme) BuildDashboard(identity string, j *Journal, on date.Date) (Dashboard, error) {
	m, err := s.Aggregate(j, date.Last(WindowDays, on))
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Identity: identity,
		On:       on,
		Metrics:  m,
		Avatar:   CalculateAvatarState(m),
		Alerts:   GenerateAlerts(m),
		NetWorth: j.Upto(on).NetWorth().Summary,
	}, nil
}
