package vitals

import (
	"errors"
	"fmt"
	"testing"
)

func TestComputeMentalScore(t *testing.T) {
	tests := []struct {
		stress     StressLevel
		motivation MotivationLevel
		fatigue    FatigueLevel
		want       int
	}{
		{StressHigh, MotivationLow, FatigueExhausted, 0},
		{StressCalm, MotivationLow, FatigueFresh, 100},
		{StressCalm, MotivationHigh, FatigueFresh, 100}, // 145 clamped
		{StressMild, MotivationMedium, FatigueTired, 80},
		{StressHigh, MotivationHigh, FatigueExhausted, 45},
		{StressHigh, MotivationLow, FatigueTired, 25},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s-%s-%s", tt.stress, tt.motivation, tt.fatigue), func(t *testing.T) {
			b, ok, err := ComputeMentalScore(DailyPsychologyInput{Stress: tt.stress, Motivation: tt.motivation, Fatigue: tt.fatigue})
			if err != nil || !ok {
				t.Fatalf("ComputeMentalScore() = %v, %v, want a score", ok, err)
			}
			if b.FinalScore != tt.want {
				t.Errorf("FinalScore = %d, want %d", b.FinalScore, tt.want)
			}
			if got := 100 - b.StressPenalty - b.FatiguePenalty + b.MotivationBonus; got != b.Raw {
				t.Errorf("Raw = %v, want %v from its terms", b.Raw, got)
			}
		})
	}
}

func TestMentalScoreBounds(t *testing.T) {
	for _, s := range StressLevels {
		for _, m := range MotivationLevels {
			for _, f := range FatigueLevels {
				b, _, err := ComputeMentalScore(DailyPsychologyInput{Stress: s, Motivation: m, Fatigue: f})
				if err != nil {
					t.Fatalf("ComputeMentalScore(%s, %s, %s) error = %v", s, m, f, err)
				}
				if b.FinalScore < 0 || b.FinalScore > 100 {
					t.Errorf("ComputeMentalScore(%s, %s, %s) = %d, want 0..100", s, m, f, b.FinalScore)
				}
			}
		}
	}
}

func TestMentalScoreIncomplete(t *testing.T) {
	// unlike health, there are no defaults: a partial log has no score.
	inputs := []DailyPsychologyInput{
		{},
		{Stress: StressCalm},
		{Stress: StressCalm, Motivation: MotivationHigh},
		{Motivation: MotivationHigh, Fatigue: FatigueFresh},
	}
	for _, in := range inputs {
		b, ok, err := ComputeMentalScore(in)
		if err != nil {
			t.Errorf("ComputeMentalScore(%+v) error = %v, want none", in, err)
		}
		if ok || b.FinalScore != 0 {
			t.Errorf("ComputeMentalScore(%+v) = %d, %v, want no score", in, b.FinalScore, ok)
		}
	}
}

func TestMentalScoreInvalidInput(t *testing.T) {
	_, ok, err := ComputeMentalScore(DailyPsychologyInput{Stress: "panic", Motivation: MotivationHigh, Fatigue: FatigueFresh})
	if !errors.Is(err, ErrInvalidInput) || ok {
		t.Errorf("ComputeMentalScore(panic) = %v, %v, want ErrInvalidInput", ok, err)
	}
	// an invalid value is reported even when the input is incomplete.
	_, _, err = ComputeMentalScore(DailyPsychologyInput{Fatigue: "dead"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ComputeMentalScore(dead) error = %v, want ErrInvalidInput", err)
	}
}

func TestFormatScore(t *testing.T) {
	health, _ := ComputeHealthScore(DailyHealthInput{SleepHours: Hours(6.5), Activity: 4, Meal: MealNormal})
	mental, _, _ := ComputeMentalScore(DailyPsychologyInput{Stress: StressMild, Motivation: MotivationMedium, Fatigue: FatigueTired})
	for _, score := range []int{0, 1, 50, 99, 100, health.FinalScore, mental.FinalScore} {
		s := FormatScore(score)
		got, err := ParseScore(s)
		if err != nil {
			t.Fatalf("ParseScore(%q) error = %v", s, err)
		}
		if got != score {
			t.Errorf("ParseScore(FormatScore(%d)) = %d", score, got)
		}
	}
	if got := FormatScore(88); got != "88/100" {
		t.Errorf("FormatScore(88) = %q, want %q", got, "88/100")
	}
	for _, s := range []string{"", "88.5/100", "101/100", "-1"} {
		if _, err := ParseScore(s); err == nil {
			t.Errorf("ParseScore(%q) = nil error, want an error", s)
		}
	}
}
