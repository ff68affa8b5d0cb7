package vitals

import (
	"math"

	"github.com/etnz/vitals/date"
)

// HealthScoreBreakdown exposes every term of a Health Score so that it can be fully
// explained to the user.
type HealthScoreBreakdown struct {
	On     date.Date `json:"date"`
	Scheme string    `json:"scheme"`

	SleepHours float64       `json:"sleepHours"`
	Activity   ActivityLevel `json:"activityLevel"`

	SleepScore       float64 `json:"sleepScore"`
	ActivityScore    float64 `json:"activityScore"`
	MealScore        float64 `json:"mealScore"`
	WaterScore       float64 `json:"waterScore"`
	ProcessedPenalty float64 `json:"processedFoodPenalty"`
	NutritionScore   float64 `json:"nutritionScore"`

	WeightedSleep     float64 `json:"weightedSleep"`
	WeightedActivity  float64 `json:"weightedActivity"`
	WeightedNutrition float64 `json:"weightedNutrition"`
	Weighted          float64 `json:"weighted"`

	IllnessPenalty      float64 `json:"illnessPenalty"`
	OvertrainingPenalty float64 `json:"overtrainingPenalty"`
	RecoveryBonus       float64 `json:"recoveryBonus"`

	// Raw is the score before clamping and rounding.
	Raw        float64 `json:"raw"`
	FinalScore int     `json:"finalScore"`

	// Defaulted lists the input fields that were absent and scored with the scheme defaults.
	Defaulted []string `json:"defaulted,omitempty"`
}

// ComputeHealthScore scores a day of health logging with the Canonical scheme.
func ComputeHealthScore(in DailyHealthInput) (HealthScoreBreakdown, error) {
	return Canonical().HealthScore(in)
}

// HealthScore scores a day of health logging.
//
//	final = round(clamp(sleep×Ws + activity×Wa + nutrition×Wn − illness − overtraining + recovery, 0, 100))
//
// Absent fields use s.Defaults. Out of domain values return an error wrapping ErrInvalidInput.
func (s Scheme) HealthScore(in DailyHealthInput) (HealthScoreBreakdown, error) {
	if err := in.Validate(); err != nil {
		return HealthScoreBreakdown{}, err
	}
	b := HealthScoreBreakdown{On: in.On, Scheme: s.Name}

	d := s.Defaults
	hours := d.SleepHours
	if in.SleepHours != nil {
		hours = *in.SleepHours
	} else {
		b.Defaulted = append(b.Defaulted, "sleepHours")
	}
	activity := in.Activity
	if activity == 0 {
		activity = d.Activity
		b.Defaulted = append(b.Defaulted, "activityLevel")
	}
	meal := orDefault(in.Meal, d.Meal, "mealQuality", &b.Defaulted)
	water := orDefault(in.Water, d.Water, "waterIntake", &b.Defaulted)
	processed := orDefault(in.ProcessedFood, d.ProcessedFood, "processedFoodLevel", &b.Defaulted)
	illness := orDefault(in.Illness, d.Illness, "illnessStatus", &b.Defaulted)

	b.SleepHours, b.Activity = hours, activity
	b.SleepScore = s.SleepScore(hours)
	b.ActivityScore = s.ActivityScores[activity]
	b.MealScore = s.MealScores[meal]
	b.WaterScore = s.WaterScores[water]
	b.ProcessedPenalty = s.ProcessedPenalties[processed]
	b.NutritionScore = s.nutrition(meal, water, processed)

	b.WeightedSleep = b.SleepScore * s.Weights.Sleep
	b.WeightedActivity = b.ActivityScore * s.Weights.Activity
	b.WeightedNutrition = b.NutritionScore * s.Weights.Nutrition
	b.Weighted = b.WeightedSleep + b.WeightedActivity + b.WeightedNutrition

	b.IllnessPenalty = s.IllnessPenalties[illness]
	b.OvertrainingPenalty = s.OvertrainingPenalty(in.RecentActivity)
	b.RecoveryBonus = s.RecoveryBonus(in.RecentActivity, in.Activity, illness)

	b.Raw = b.Weighted - b.IllnessPenalty - b.OvertrainingPenalty + b.RecoveryBonus
	b.FinalScore = int(math.Round(clamp(b.Raw, 0, 100)))
	return b, nil
}

func orDefault[T ~string](v, def T, field string, defaulted *[]string) T {
	if v == "" {
		*defaulted = append(*defaulted, field)
		return def
	}
	return v
}

// SleepScore returns the score of the first sleep band matching hours.
func (s Scheme) SleepScore(hours float64) float64 {
	for _, b := range s.SleepBands {
		if b.match(hours) {
			return b.Score
		}
	}
	return 0
}

// ActivityScore returns the score of a valid activity level.
func (s Scheme) ActivityScore(a ActivityLevel) (float64, error) {
	if a == 0 {
		return 0, invalid("activityLevel", 0, "want 1..5")
	}
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return s.ActivityScores[a], nil
}

// NutritionScore averages meal and water scores, subtracts the processed-food penalty and
// clamps the result to 0..100. Absent values use the scheme defaults.
func (s Scheme) NutritionScore(meal MealQuality, water WaterIntake, processed ProcessedFoodLevel) (float64, error) {
	for _, err := range []error{meal.Validate(), water.Validate(), processed.Validate()} {
		if err != nil {
			return 0, err
		}
	}
	var ignored []string
	meal = orDefault(meal, s.Defaults.Meal, "", &ignored)
	water = orDefault(water, s.Defaults.Water, "", &ignored)
	processed = orDefault(processed, s.Defaults.ProcessedFood, "", &ignored)
	return s.nutrition(meal, water, processed), nil
}

func (s Scheme) nutrition(meal MealQuality, water WaterIntake, processed ProcessedFoodLevel) float64 {
	return clamp((s.MealScores[meal]+s.WaterScores[water])/2-s.ProcessedPenalties[processed], 0, 100)
}

// OvertrainingPenalty returns the penalty when the last Overtraining.Days entries of the
// trailing history were all at the maximum level.
func (s Scheme) OvertrainingPenalty(recent []ActivityLevel) float64 {
	n := s.Overtraining.Days
	if n <= 0 || len(recent) < n {
		return 0
	}
	for _, a := range recent[len(recent)-n:] {
		if a != MaxActivity {
			return 0
		}
	}
	return s.Overtraining.Penalty
}

// RecoveryBonus returns the bonus when yesterday was a heavy day (level >= 4) and today is
// a moderate day (level 2 or 3) while not ill. An unlogged day is never a recovery day.
func (s Scheme) RecoveryBonus(recent []ActivityLevel, today ActivityLevel, illness IllnessStatus) float64 {
	if s.Recovery.Bonus <= 0 || len(recent) == 0 || illness != IllnessNone {
		return 0
	}
	if recent[len(recent)-1] >= 4 && (today == 2 || today == 3) {
		return s.Recovery.Bonus
	}
	return 0
}

func clamp(v, low, high float64) float64 { return math.Max(low, math.Min(high, v)) }
