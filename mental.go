package vitals

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/vitals/date"
)

// MentalScoreBreakdown exposes every term of a Mental Score.
type MentalScoreBreakdown struct {
	On     date.Date `json:"date"`
	Scheme string    `json:"scheme"`

	Stress     StressLevel     `json:"stressLevel"`
	Motivation MotivationLevel `json:"motivationLevel"`
	Fatigue    FatigueLevel    `json:"fatigueLevel"`

	StressPenalty   float64 `json:"stressPenalty"`
	FatiguePenalty  float64 `json:"fatiguePenalty"`
	MotivationBonus float64 `json:"motivationBonus"`

	// Raw is 100 − stress − fatigue + motivation, before clamping.
	Raw        float64 `json:"raw"`
	FinalScore int     `json:"finalScore"`
}

// ComputeMentalScore scores a day of psychology logging with the Canonical scheme.
func ComputeMentalScore(in DailyPsychologyInput) (MentalScoreBreakdown, bool, error) {
	return Canonical().MentalScore(in)
}

// MentalScore scores a day of psychology logging.
//
//	final = clamp(100 − stressPenalty − fatiguePenalty + motivationBonus, 0, 100)
//
// The penalties alone can reach 100, the motivation bonus is what keeps a calm but
// unmotivated day above 0.
//
// Incomplete input (any of the three fields absent) has no score: ok is false and err is
// nil. Unlike health inputs there are no defaults here.
func (s Scheme) MentalScore(in DailyPsychologyInput) (b MentalScoreBreakdown, ok bool, err error) {
	if err := in.Validate(); err != nil {
		return MentalScoreBreakdown{}, false, err
	}
	if !in.Complete() {
		return MentalScoreBreakdown{}, false, nil
	}
	b = MentalScoreBreakdown{
		On:              in.On,
		Scheme:          s.Name,
		Stress:          in.Stress,
		Motivation:      in.Motivation,
		Fatigue:         in.Fatigue,
		StressPenalty:   s.StressPenalties[in.Stress],
		FatiguePenalty:  s.FatiguePenalties[in.Fatigue],
		MotivationBonus: s.MotivationBonuses[in.Motivation],
	}
	b.Raw = 100 - b.StressPenalty - b.FatiguePenalty + b.MotivationBonus
	b.FinalScore = int(math.Round(clamp(b.Raw, 0, 100)))
	return b, true, nil
}

// FormatScore returns the displayed form of a score, like "88/100".
func FormatScore(score int) string { return fmt.Sprintf("%d/100", score) }

// ParseScore parses a score displayed by FormatScore. A bare integer is accepted too.
func ParseScore(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "/100")
	score, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", s, err)
	}
	if score < 0 || score > 100 {
		return 0, invalid("score", score, "want 0..100")
	}
	return score, nil
}
