package vitals

import (
	"math"
)

// Status is the label of an avatar state.
type Status string

const (
	Thriving   Status = "thriving"
	Energetic  Status = "energetic"
	Stable     Status = "stable"
	Tired      Status = "tired"
	Stressed   Status = "stressed"
	Exhausted  Status = "exhausted"
	Struggling Status = "struggling"
	Critical   Status = "critical"
)

var statusMessages = map[Status]string{
	Thriving:   "Everything is in balance, keep it up!",
	Energetic:  "Full of energy and ready for the day.",
	Stable:     "Steady. Small improvements will go a long way.",
	Tired:      "Running low, rest and sleep should come first.",
	Stressed:   "Stress is taking its toll, slow down a bit.",
	Exhausted:  "Close to burnout, recovery is the priority.",
	Struggling: "Finances are weighing on you, review your spending.",
	Critical:   "Your health needs attention now.",
}

// Message returns the user facing message of the status.
func (s Status) Message() string { return statusMessages[s] }

// AvatarState is derived fresh from the aggregated metrics, it is never persisted.
type AvatarState struct {
	Energy        int    `json:"energy"`
	Morale        int    `json:"morale"`
	Balance       int    `json:"balance"`
	OverallScore  int    `json:"overallScore"`
	Status        Status `json:"status"`
	StatusMessage string `json:"statusMessage"`
	// Rules lists the id of every matching rule, in evaluation order.
	Rules []string `json:"rules,omitempty"`
}

// AvatarRule adjusts the avatar axes when its condition holds.
//
// A rule with a Status proposes it as the final status; the highest Priority among the
// matching rules wins, and on equal priorities the first rule of the list wins.
type AvatarRule struct {
	ID       string
	Priority int
	Status   Status

	Energy, Morale, Balance float64

	When func(AggregatedMetrics) bool
}

// AvatarEngine evaluates a rule table over aggregated metrics.
type AvatarEngine struct {
	Rules []AvatarRule

	// Continuous adjustments proportional to the deviation of the composite scores from 50.
	HealthFactor  float64 // on energy, from the average Health Score
	MentalFactor  float64 // on morale, from the average Mental Score
	BalanceFactor float64 // on balance, from the mean of both averages
}

// DefaultAvatarEngine returns the engine with DefaultAvatarRules.
func DefaultAvatarEngine() AvatarEngine {
	return AvatarEngine{Rules: DefaultAvatarRules(), HealthFactor: 0.3, MentalFactor: 0.3, BalanceFactor: 0.2}
}

// CalculateAvatarState derives the avatar with the default engine.
func CalculateAvatarState(m AggregatedMetrics) AvatarState {
	return DefaultAvatarEngine().State(m)
}

const neutral = 50

// State derives the avatar state from m.
func (e AvatarEngine) State(m AggregatedMetrics) AvatarState {
	energy, morale, balance := float64(neutral), float64(neutral), float64(neutral)
	var st AvatarState

	status, highest := Status(""), math.MinInt
	for _, r := range e.Rules {
		if !r.When(m) {
			continue
		}
		st.Rules = append(st.Rules, r.ID)
		energy += r.Energy
		morale += r.Morale
		balance += r.Balance
		// strictly greater: the first rule wins on equal priorities.
		if r.Status != "" && r.Priority > highest {
			status, highest = r.Status, r.Priority
		}
	}

	var composites []float64
	if m.Health != nil {
		energy += (m.Health.AvgHealthScore - neutral) * e.HealthFactor
		composites = append(composites, m.Health.AvgHealthScore)
	}
	if m.Psychology != nil {
		morale += (m.Psychology.AvgMentalScore - neutral) * e.MentalFactor
		composites = append(composites, m.Psychology.AvgMentalScore)
	}
	if len(composites) > 0 {
		sum := 0.0
		for _, c := range composites {
			sum += c
		}
		balance += (sum/float64(len(composites)) - neutral) * e.BalanceFactor
	}

	st.Energy = int(math.Round(clamp(energy, 0, 100)))
	st.Morale = int(math.Round(clamp(morale, 0, 100)))
	st.Balance = int(math.Round(clamp(balance, 0, 100)))
	st.OverallScore = int(math.Round(float64(st.Energy+st.Morale+st.Balance) / 3))

	if status == "" {
		status = BandedStatus(st.OverallScore)
	}
	st.Status = status
	st.StatusMessage = status.Message()
	return st
}

// BandedStatus is the status of an overall score when no rule proposed one.
func BandedStatus(overall int) Status {
	switch {
	case overall >= 75:
		return Thriving
	case overall >= 60:
		return Energetic
	case overall >= 40:
		return Stable
	case overall >= 25:
		return Tired
	default:
		return Critical
	}
}
