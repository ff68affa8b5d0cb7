package vitals

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/vitals/date"
)

func TestSleepScore(t *testing.T) {
	s := Canonical()
	tests := []struct {
		hours float64
		want  float64
	}{
		{0, 40},
		{4.9, 40},
		{5, 60},
		{5.5, 60},
		{6, 80},
		{6.99, 80},
		{7, 100},
		{8, 100},
		{8.99, 100},
		{9, 85},
		{10, 85},
		{10.5, 60},
		{14, 60},
	}
	for _, tt := range tests {
		if got := s.SleepScore(tt.hours); got != tt.want {
			t.Errorf("SleepScore(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}

	// every hour in [7,9) is an optimal night.
	for h := 7.0; h < 9; h += 0.05 {
		if got := s.SleepScore(h); got != 100 {
			t.Errorf("SleepScore(%v) = %v, want 100", h, got)
		}
	}
}

func TestActivityScore(t *testing.T) {
	canonical, sustainable := Canonical(), Sustainable()
	for a := MinActivity; a <= MaxActivity; a++ {
		got, err := canonical.ActivityScore(a)
		if err != nil {
			t.Fatalf("ActivityScore(%d) error = %v", a, err)
		}
		if want := float64(a) * 20; got != want {
			t.Errorf("canonical ActivityScore(%d) = %v, want %v", a, got, want)
		}
	}
	if got, _ := sustainable.ActivityScore(4); got != 100 {
		t.Errorf("sustainable ActivityScore(4) = %v, want 100", got)
	}
	if got, _ := sustainable.ActivityScore(5); got != 80 {
		t.Errorf("sustainable ActivityScore(5) = %v, want 80", got)
	}
	for _, a := range []ActivityLevel{0, -1, 6, 7} {
		if _, err := canonical.ActivityScore(a); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ActivityScore(%d) error = %v, want ErrInvalidInput", a, err)
		}
	}
}

func TestNutritionScore(t *testing.T) {
	s := Canonical()
	tests := []struct {
		meal      MealQuality
		water     WaterIntake
		processed ProcessedFoodLevel
		want      float64
	}{
		{MealGood, WaterGood, ProcessedLow, 100},
		{MealGood, WaterGood, ProcessedHigh, 75},
		{MealPoor, WaterLow, ProcessedHigh, 15},
		{MealNormal, WaterAdequate, ProcessedMedium, 60},
		{"", "", "", 70}, // defaults
	}
	for _, tt := range tests {
		got, err := s.NutritionScore(tt.meal, tt.water, tt.processed)
		if err != nil {
			t.Fatalf("NutritionScore(%q, %q, %q) error = %v", tt.meal, tt.water, tt.processed, err)
		}
		if got != tt.want {
			t.Errorf("NutritionScore(%q, %q, %q) = %v, want %v", tt.meal, tt.water, tt.processed, got, tt.want)
		}
	}
	if _, err := s.NutritionScore("excellent", WaterGood, ProcessedLow); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NutritionScore(excellent) error = %v, want ErrInvalidInput", err)
	}
}

func TestComputeHealthScore(t *testing.T) {
	on := date.New(2025, 3, 10)
	b, err := ComputeHealthScore(DailyHealthInput{
		On:            on,
		SleepHours:    Hours(8),
		Activity:      3,
		Meal:          MealGood,
		Water:         WaterGood,
		ProcessedFood: ProcessedLow,
		Illness:       IllnessNone,
	})
	if err != nil {
		t.Fatalf("ComputeHealthScore() error = %v", err)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"SleepScore", b.SleepScore, 100},
		{"ActivityScore", b.ActivityScore, 60},
		{"NutritionScore", b.NutritionScore, 100},
		{"WeightedSleep", b.WeightedSleep, 40},
		{"WeightedActivity", b.WeightedActivity, 18},
		{"WeightedNutrition", b.WeightedNutrition, 30},
		{"IllnessPenalty", b.IllnessPenalty, 0},
		{"FinalScore", float64(b.FinalScore), 88},
	}
	for _, c := range checks {
		if !near(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if b.Scheme != CanonicalName || b.On != on {
		t.Errorf("breakdown is not labelled: scheme %q on %v", b.Scheme, b.On)
	}
	if len(b.Defaulted) != 0 {
		t.Errorf("Defaulted = %v, want none", b.Defaulted)
	}
}

func TestHealthScoreDefaults(t *testing.T) {
	// partial logging still yields a usable score.
	b, err := ComputeHealthScore(DailyHealthInput{On: date.New(2025, 3, 10)})
	if err != nil {
		t.Fatalf("ComputeHealthScore() error = %v", err)
	}
	// 100×0.4 + 60×0.3 + 70×0.3
	if b.FinalScore != 79 {
		t.Errorf("FinalScore = %d, want 79", b.FinalScore)
	}
	want := []string{"sleepHours", "activityLevel", "mealQuality", "waterIntake", "processedFoodLevel", "illnessStatus"}
	if !slices.Equal(b.Defaulted, want) {
		t.Errorf("Defaulted = %v, want %v", b.Defaulted, want)
	}
}

func TestHealthScoreAdjustments(t *testing.T) {
	base := DailyHealthInput{SleepHours: Hours(8), Meal: MealGood, Water: WaterGood, ProcessedFood: ProcessedLow}
	tests := []struct {
		name    string
		modify  func(*DailyHealthInput)
		want    int
		penalty float64
		bonus   float64
	}{
		{
			name:   "mild illness",
			modify: func(in *DailyHealthInput) { in.Activity, in.Illness = 3, IllnessMild },
			want:   78,
		},
		{
			name:   "severe illness",
			modify: func(in *DailyHealthInput) { in.Activity, in.Illness = 3, IllnessSevere },
			want:   58,
		},
		{
			name:    "overtraining",
			modify:  func(in *DailyHealthInput) { in.Activity, in.RecentActivity = 5, []ActivityLevel{5, 5, 5} },
			want:    85, // 40 + 30 + 30 - 15
			penalty: 15,
		},
		{
			name:   "not all days at max",
			modify: func(in *DailyHealthInput) { in.Activity, in.RecentActivity = 5, []ActivityLevel{5, 4, 5} },
			want:   100,
		},
		{
			name:   "recovery",
			modify: func(in *DailyHealthInput) { in.Activity, in.RecentActivity = 2, []ActivityLevel{3, 4} },
			want:   87, // 40 + 12 + 30 + 5
			bonus:  5,
		},
		{
			name:   "no recovery when ill",
			modify: func(in *DailyHealthInput) { in.Activity, in.Illness, in.RecentActivity = 2, IllnessMild, []ActivityLevel{4} },
			want:   72,
		},
		{
			name:   "no recovery when today is unlogged",
			modify: func(in *DailyHealthInput) { in.RecentActivity = []ActivityLevel{5} },
			want:   88,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.modify(&in)
			b, err := ComputeHealthScore(in)
			if err != nil {
				t.Fatalf("ComputeHealthScore() error = %v", err)
			}
			if b.FinalScore != tt.want {
				t.Errorf("FinalScore = %d, want %d", b.FinalScore, tt.want)
			}
			if b.OvertrainingPenalty != tt.penalty {
				t.Errorf("OvertrainingPenalty = %v, want %v", b.OvertrainingPenalty, tt.penalty)
			}
			if b.RecoveryBonus != tt.bonus {
				t.Errorf("RecoveryBonus = %v, want %v", b.RecoveryBonus, tt.bonus)
			}
		})
	}
}

func TestHealthScoreClamps(t *testing.T) {
	b, err := ComputeHealthScore(DailyHealthInput{
		SleepHours: Hours(2), Activity: 1, Meal: MealPoor, Water: WaterLow, ProcessedFood: ProcessedHigh, Illness: IllnessSevere,
	})
	if err != nil {
		t.Fatalf("ComputeHealthScore() error = %v", err)
	}
	// 16 + 6 + 4.5 - 30
	if b.Raw >= 0 || b.FinalScore != 0 {
		t.Errorf("Raw = %v, FinalScore = %d, want a negative raw clamped to 0", b.Raw, b.FinalScore)
	}
}

func TestHealthScoreInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   DailyHealthInput
	}{
		{"activity", DailyHealthInput{Activity: 7}},
		{"sleep", DailyHealthInput{SleepHours: Hours(25)}},
		{"negative sleep", DailyHealthInput{SleepHours: Hours(-1)}},
		{"meal", DailyHealthInput{Meal: "excellent"}},
		{"water", DailyHealthInput{Water: "a lot"}},
		{"illness", DailyHealthInput{Illness: "flu"}},
		{"history", DailyHealthInput{RecentActivity: []ActivityLevel{3, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeHealthScore(tt.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ComputeHealthScore() error = %v, want ErrInvalidInput", err)
			}
			var ie *InputError
			if !errors.As(err, &ie) || ie.Field == "" {
				t.Errorf("error %v does not name the field", err)
			}
		})
	}
}

func TestParseActivity(t *testing.T) {
	if a, err := ParseActivity(""); err != nil || a != 0 {
		t.Errorf("ParseActivity(\"\") = %d, %v, want absent", a, err)
	}
	if a, err := ParseActivity(" 4 "); err != nil || a != 4 {
		t.Errorf("ParseActivity(4) = %d, %v, want 4", a, err)
	}
	for _, s := range []string{"0", "6", "high"} {
		if _, err := ParseActivity(s); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseActivity(%q) error = %v, want ErrInvalidInput", s, err)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("stress", " High", StressLevels...)
	if err != nil || got != StressHigh {
		t.Errorf("Parse(High) = %q, %v, want %q", got, err, StressHigh)
	}
	if _, err := Parse("stress", "panic", StressLevels...); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Parse(panic) error = %v, want ErrInvalidInput", err)
	}
}

func near(got, want float64) bool {
	d := got - want
	return d < 1e-9 && d > -1e-9
}
