package vitals

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/vitals/date"
)

// ActivityLevel is the ordinal intensity of the day's physical activity, from 1 to 5.
// The zero value means the level was not logged.
type ActivityLevel int

const (
	MinActivity ActivityLevel = 1
	MaxActivity ActivityLevel = 5
)

func (a ActivityLevel) Validate() error {
	if a != 0 && (a < MinActivity || a > MaxActivity) {
		return invalid("activityLevel", int(a), "want 1..5")
	}
	return nil
}

// ParseActivity parses an activity level from a user text. The empty text is an absent level.
func ParseActivity(s string) (ActivityLevel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid("activityLevel", s, "not a number")
	}
	a := ActivityLevel(i)
	if a == 0 {
		return 0, invalid("activityLevel", 0, "want 1..5")
	}
	return a, a.Validate()
}

// MealQuality is the overall quality of the day's meals.
type MealQuality string

const (
	MealPoor   MealQuality = "poor"
	MealNormal MealQuality = "normal"
	MealGood   MealQuality = "good"
)

// MealQualities lists the valid MealQuality values.
var MealQualities = []MealQuality{MealPoor, MealNormal, MealGood}

func (m MealQuality) Validate() error {
	return oneOf("mealQuality", m, MealQualities...)
}

// ProcessedFoodLevel is how much processed food was eaten during the day.
type ProcessedFoodLevel string

const (
	ProcessedHigh   ProcessedFoodLevel = "high"
	ProcessedMedium ProcessedFoodLevel = "medium"
	ProcessedLow    ProcessedFoodLevel = "low"
)

var ProcessedFoodLevels = []ProcessedFoodLevel{ProcessedHigh, ProcessedMedium, ProcessedLow}

func (p ProcessedFoodLevel) Validate() error {
	return oneOf("processedFoodLevel", p, ProcessedFoodLevels...)
}

// WaterIntake is the day's hydration.
type WaterIntake string

const (
	WaterLow      WaterIntake = "low"
	WaterAdequate WaterIntake = "adequate"
	WaterGood     WaterIntake = "good"
)

var WaterIntakes = []WaterIntake{WaterLow, WaterAdequate, WaterGood}

func (w WaterIntake) Validate() error {
	return oneOf("waterIntake", w, WaterIntakes...)
}

// IllnessStatus is the day's illness.
type IllnessStatus string

const (
	IllnessNone   IllnessStatus = "none"
	IllnessMild   IllnessStatus = "mild"
	IllnessSevere IllnessStatus = "severe"
)

var IllnessStatuses = []IllnessStatus{IllnessNone, IllnessMild, IllnessSevere}

func (i IllnessStatus) Validate() error {
	return oneOf("illnessStatus", i, IllnessStatuses...)
}

// StressLevel is the day's perceived stress.
type StressLevel string

const (
	StressCalm StressLevel = "calm"
	StressMild StressLevel = "mild"
	StressHigh StressLevel = "high"
)

var StressLevels = []StressLevel{StressCalm, StressMild, StressHigh}

func (s StressLevel) Validate() error {
	return oneOf("stressLevel", s, StressLevels...)
}

// MotivationLevel is the day's perceived motivation.
type MotivationLevel string

const (
	MotivationHigh   MotivationLevel = "high"
	MotivationMedium MotivationLevel = "medium"
	MotivationLow    MotivationLevel = "low"
)

var MotivationLevels = []MotivationLevel{MotivationHigh, MotivationMedium, MotivationLow}

func (m MotivationLevel) Validate() error {
	return oneOf("motivationLevel", m, MotivationLevels...)
}

// FatigueLevel is the day's perceived fatigue.
type FatigueLevel string

const (
	FatigueFresh     FatigueLevel = "fresh"
	FatigueTired     FatigueLevel = "tired"
	FatigueExhausted FatigueLevel = "exhausted"
)

var FatigueLevels = []FatigueLevel{FatigueFresh, FatigueTired, FatigueExhausted}

func (f FatigueLevel) Validate() error {
	return oneOf("fatigueLevel", f, FatigueLevels...)
}

// oneOf validates an optional enum: the empty value is accepted as "absent".
func oneOf[T ~string](field string, v T, valid ...T) error {
	if v == "" {
		return nil
	}
	for _, x := range valid {
		if v == x {
			return nil
		}
	}
	names := make([]string, len(valid))
	for i, x := range valid {
		names[i] = string(x)
	}
	return invalid(field, string(v), "want one of "+strings.Join(names, "|"))
}

// Parse an enum from a user text, like a CLI flag.
func Parse[T ~string](field, s string, valid ...T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if err := oneOf(field, v, valid...); err != nil {
		return "", err
	}
	return v, nil
}

// DailyHealthInput is one day of health logging.
//
// Every field but On is optional. Absent fields are scored with the scheme
// defaults, so that partial logging still produces a usable Health Score.
type DailyHealthInput struct {
	On            date.Date          `json:"date"`
	SleepHours    *float64           `json:"sleepHours,omitempty"`
	Activity      ActivityLevel      `json:"activityLevel,omitempty"`
	Meal          MealQuality        `json:"mealQuality,omitempty"`
	ProcessedFood ProcessedFoodLevel `json:"processedFoodLevel,omitempty"`
	Water         WaterIntake        `json:"waterIntake,omitempty"`
	Illness       IllnessStatus      `json:"illnessStatus,omitempty"`
	// RecentActivity is the activity of the trailing days, oldest first, not including On.
	RecentActivity []ActivityLevel `json:"recentActivityHistory,omitempty"`
}

// Hours is a helper to set DailyHealthInput.SleepHours.
func Hours(h float64) *float64 { return &h }

// Validate checks every present field against its domain.
func (in DailyHealthInput) Validate() error {
	if in.SleepHours != nil {
		h := *in.SleepHours
		if math.IsNaN(h) || h < 0 || h > 24 {
			return invalid("sleepHours", h, "want 0..24")
		}
	}
	if err := in.Activity.Validate(); err != nil {
		return err
	}
	for i, a := range in.RecentActivity {
		if a == 0 {
			return invalid(fmt.Sprintf("recentActivityHistory[%d]", i), 0, "want 1..5")
		}
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, err := range []error{in.Meal.Validate(), in.ProcessedFood.Validate(), in.Water.Validate(), in.Illness.Validate()} {
		if err != nil {
			return err
		}
	}
	return nil
}

// DailyPsychologyInput is one day of psychology logging.
//
// Unlike health, all three fields are required to define a Mental Score: a
// psychological score guessed from partial input would be misleading.
type DailyPsychologyInput struct {
	On         date.Date       `json:"date"`
	Stress     StressLevel     `json:"stressLevel,omitempty"`
	Motivation MotivationLevel `json:"motivationLevel,omitempty"`
	Fatigue    FatigueLevel    `json:"fatigueLevel,omitempty"`
}

// Complete reports whether the three fields are present.
func (in DailyPsychologyInput) Complete() bool {
	return in.Stress != "" && in.Motivation != "" && in.Fatigue != ""
}

// Validate checks every present field against its domain.
func (in DailyPsychologyInput) Validate() error {
	for _, err := range []error{in.Stress.Validate(), in.Motivation.Validate(), in.Fatigue.Validate()} {
		if err != nil {
			return err
		}
	}
	return nil
}
