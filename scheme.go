package vitals

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// A Scheme is one versioned configuration of every scoring table.
//
// The product evolved several formulas (3-factor vs 7-category weights, different sleep
// cut-offs). Each of them is a Scheme; a deployment selects exactly one and never
// averages the outputs of two schemes.
type Scheme struct {
	Name string `yaml:"name"`

	// SleepBands is evaluated in order, the first band matching the hours wins.
	SleepBands []SleepBand `yaml:"sleep_bands"`

	ActivityScores     map[ActivityLevel]float64      `yaml:"activity_scores"`
	MealScores         map[MealQuality]float64        `yaml:"meal_scores"`
	WaterScores        map[WaterIntake]float64        `yaml:"water_scores"`
	ProcessedPenalties map[ProcessedFoodLevel]float64 `yaml:"processed_food_penalties"`
	IllnessPenalties   map[IllnessStatus]float64      `yaml:"illness_penalties"`

	StressPenalties   map[StressLevel]float64     `yaml:"stress_penalties"`
	FatiguePenalties  map[FatigueLevel]float64    `yaml:"fatigue_penalties"`
	MotivationBonuses map[MotivationLevel]float64 `yaml:"motivation_bonuses"`

	Weights      Weights          `yaml:"weights"`
	Overtraining OvertrainingRule `yaml:"overtraining"`
	Recovery     RecoveryRule     `yaml:"recovery"`
	Defaults     Defaults         `yaml:"defaults"`
}

// SleepBand matches hours >= From (hours > From when Exclusive).
type SleepBand struct {
	From      float64 `yaml:"from"`
	Exclusive bool    `yaml:"exclusive,omitempty"`
	Score     float64 `yaml:"score"`
}

func (b SleepBand) match(hours float64) bool {
	if b.Exclusive {
		return hours > b.From
	}
	return hours >= b.From
}

// Weights of the Health Score composite. They must sum to exactly 1.
type Weights struct {
	Sleep     float64 `yaml:"sleep"`
	Activity  float64 `yaml:"activity"`
	Nutrition float64 `yaml:"nutrition"`
}

// Sum returns the exact decimal sum of the configured weights.
func (w Weights) Sum() decimal.Decimal {
	return decimal.NewFromFloat(w.Sleep).
		Add(decimal.NewFromFloat(w.Activity)).
		Add(decimal.NewFromFloat(w.Nutrition))
}

// OvertrainingRule subtracts Penalty when the trailing Days were all at the maximum
// activity level. Days = 0 disables the rule.
type OvertrainingRule struct {
	Days    int     `yaml:"days"`
	Penalty float64 `yaml:"penalty"`
}

// RecoveryRule adds Bonus when the previous day was heavy (>= 4) and today is moderate
// (2 or 3), while not ill. Bonus = 0 disables the rule.
type RecoveryRule struct {
	Bonus float64 `yaml:"bonus"`
}

// Defaults are the values used for absent health fields.
type Defaults struct {
	SleepHours    float64            `yaml:"sleep_hours"`
	Activity      ActivityLevel      `yaml:"activity"`
	Meal          MealQuality        `yaml:"meal"`
	Water         WaterIntake        `yaml:"water"`
	ProcessedFood ProcessedFoodLevel `yaml:"processed_food"`
	Illness       IllnessStatus      `yaml:"illness"`
}

const (
	CanonicalName   = "canonical-v3"
	SustainableName = "sustainable-v1"
)

// Canonical returns the reference scheme: 3-factor weights 0.40/0.30/0.30, activity
// linear in the level (level × 20).
func Canonical() Scheme {
	return Scheme{
		Name: CanonicalName,
		SleepBands: []SleepBand{
			{From: 10, Exclusive: true, Score: 60},
			{From: 9, Score: 85},
			{From: 7, Score: 100},
			{From: 6, Score: 80},
			{From: 5, Score: 60},
			{From: 0, Score: 40},
		},
		ActivityScores:     map[ActivityLevel]float64{1: 20, 2: 40, 3: 60, 4: 80, 5: 100},
		MealScores:         map[MealQuality]float64{MealPoor: 40, MealNormal: 70, MealGood: 100},
		WaterScores:        map[WaterIntake]float64{WaterLow: 40, WaterAdequate: 70, WaterGood: 100},
		ProcessedPenalties: map[ProcessedFoodLevel]float64{ProcessedHigh: 25, ProcessedMedium: 10, ProcessedLow: 0},
		IllnessPenalties:   map[IllnessStatus]float64{IllnessNone: 0, IllnessMild: 10, IllnessSevere: 30},
		StressPenalties:    map[StressLevel]float64{StressCalm: 0, StressMild: 25, StressHigh: 55},
		FatiguePenalties:   map[FatigueLevel]float64{FatigueFresh: 0, FatigueTired: 20, FatigueExhausted: 45},
		MotivationBonuses:  map[MotivationLevel]float64{MotivationHigh: 45, MotivationMedium: 25, MotivationLow: 0},
		Weights:            Weights{Sleep: 0.40, Activity: 0.30, Nutrition: 0.30},
		Overtraining:       OvertrainingRule{Days: 3, Penalty: 15},
		Recovery:           RecoveryRule{Bonus: 5},
		Defaults: Defaults{
			SleepHours:    7,
			Activity:      3,
			Meal:          MealNormal,
			Water:         WaterAdequate,
			ProcessedFood: ProcessedLow,
			Illness:       IllnessNone,
		},
	}
}

// Sustainable returns the canonical scheme where level 4 is the sustainable optimum and
// level 5 is capped to discourage overtraining.
func Sustainable() Scheme {
	s := Canonical()
	s.Name = SustainableName
	s.ActivityScores = map[ActivityLevel]float64{1: 20, 2: 40, 3: 60, 4: 100, 5: 80}
	return s
}

// BuiltinSchemes returns the schemes shipped with the package, by name.
func BuiltinSchemes() map[string]Scheme {
	return map[string]Scheme{
		CanonicalName:   Canonical(),
		SustainableName: Sustainable(),
	}
}

// LookupScheme returns the scheme called name, searching profiles first, then the builtins.
func LookupScheme(name string, profiles map[string]Scheme) (Scheme, error) {
	if name == "" {
		name = CanonicalName
	}
	if s, ok := profiles[name]; ok {
		return s, nil
	}
	if s, ok := BuiltinSchemes()[name]; ok {
		return s, nil
	}
	return Scheme{}, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Validate checks that the scheme is complete and consistent.
func (s Scheme) Validate() error {
	var errs error
	if s.Name == "" {
		errs = errors.Join(errs, errors.New("scheme has no name"))
	}
	if len(s.SleepBands) == 0 {
		errs = errors.Join(errs, errors.New("no sleep bands"))
	}
	for i, b := range s.SleepBands {
		if i > 0 && b.From > s.SleepBands[i-1].From {
			errs = errors.Join(errs, fmt.Errorf("sleep band %d (from %v) is not sorted in descending order", i, b.From))
		}
		if !inRange(b.Score) {
			errs = errors.Join(errs, fmt.Errorf("sleep band %d has a score %v outside 0..100", i, b.Score))
		}
	}
	if n := len(s.SleepBands); n > 0 && (s.SleepBands[n-1].From != 0 || s.SleepBands[n-1].Exclusive) {
		errs = errors.Join(errs, errors.New("last sleep band must match every hours >= 0"))
	}
	var levels []ActivityLevel
	for a := MinActivity; a <= MaxActivity; a++ {
		levels = append(levels, a)
	}
	errs = errors.Join(errs,
		checkTable("activity_scores", s.ActivityScores, levels),
		checkTable("meal_scores", s.MealScores, MealQualities),
		checkTable("water_scores", s.WaterScores, WaterIntakes),
		checkTable("processed_food_penalties", s.ProcessedPenalties, ProcessedFoodLevels),
		checkTable("illness_penalties", s.IllnessPenalties, IllnessStatuses),
		checkTable("stress_penalties", s.StressPenalties, StressLevels),
		checkTable("fatigue_penalties", s.FatiguePenalties, FatigueLevels),
		checkTable("motivation_bonuses", s.MotivationBonuses, MotivationLevels),
	)
	if !s.Weights.Sum().Equal(decimal.NewFromInt(1)) {
		errs = errors.Join(errs, fmt.Errorf("weights sum to %v, want 1", s.Weights.Sum()))
	}
	if s.Weights.Sleep < 0 || s.Weights.Activity < 0 || s.Weights.Nutrition < 0 {
		errs = errors.Join(errs, errors.New("negative weight"))
	}
	if s.Overtraining.Days < 0 || !inRange(s.Overtraining.Penalty) || !inRange(s.Recovery.Bonus) {
		errs = errors.Join(errs, errors.New("overtraining days must be positive, its penalty and the recovery bonus within 0..100"))
	}
	if err := s.Defaults.validate(); err != nil {
		errs = errors.Join(errs, fmt.Errorf("defaults: %w", err))
	}
	if errs != nil {
		return fmt.Errorf("scheme %q: %w", s.Name, errs)
	}
	return nil
}

func (d Defaults) validate() error {
	if d.Activity == 0 || d.Meal == "" || d.Water == "" || d.ProcessedFood == "" || d.Illness == "" {
		return errors.New("every default must be set")
	}
	return DailyHealthInput{
		SleepHours:    &d.SleepHours,
		Activity:      d.Activity,
		Meal:          d.Meal,
		Water:         d.Water,
		ProcessedFood: d.ProcessedFood,
		Illness:       d.Illness,
	}.Validate()
}

func (s Scheme) clone() Scheme {
	c := s
	c.SleepBands = slices.Clone(s.SleepBands)
	c.ActivityScores = maps.Clone(s.ActivityScores)
	c.MealScores = maps.Clone(s.MealScores)
	c.WaterScores = maps.Clone(s.WaterScores)
	c.ProcessedPenalties = maps.Clone(s.ProcessedPenalties)
	c.IllnessPenalties = maps.Clone(s.IllnessPenalties)
	c.StressPenalties = maps.Clone(s.StressPenalties)
	c.FatiguePenalties = maps.Clone(s.FatiguePenalties)
	c.MotivationBonuses = maps.Clone(s.MotivationBonuses)
	return c
}

// checkTable checks that m has a value within 0..100 for every key, and no other key.
func checkTable[K cmp.Ordered](table string, m map[K]float64, keys []K) error {
	var errs error
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			errs = errors.Join(errs, fmt.Errorf("%s: missing value for %v", table, k))
		}
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		switch v := m[k]; {
		case !slices.Contains(keys, k):
			errs = errors.Join(errs, fmt.Errorf("%s: unknown key %v, want one of %v", table, k, keys))
		case !inRange(v):
			errs = errors.Join(errs, fmt.Errorf("%s: value %v for %v is outside 0..100", table, v, k))
		}
	}
	return errs
}

// inRange reports whether v is a valid score, penalty or bonus.
func inRange(v float64) bool { return v >= 0 && v <= 100 }

// LoadSchemes reads a YAML file of scheme profiles.
//
//	schemes:
//	  - name: night-shift
//	    base: canonical-v3
//	    sleep_bands: [...]
//
// Each profile starts from its base scheme (a builtin or a profile defined earlier in the
// file, canonical by default) and overrides the fields it declares. Every profile is validated.
func LoadSchemes(path string) (map[string]Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeSchemes(data)
}

func decodeSchemes(data []byte) (map[string]Scheme, error) {
	var file struct {
		Schemes []yaml.Node `yaml:"schemes"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse scheme profiles: %w", err)
	}

	profiles := make(map[string]Scheme, len(file.Schemes))
	for i, node := range file.Schemes {
		var head struct {
			Name string `yaml:"name"`
			Base string `yaml:"base"`
		}
		if err := node.Decode(&head); err != nil {
			return nil, fmt.Errorf("scheme profile #%d: %w", i, err)
		}
		base, err := LookupScheme(head.Base, profiles)
		if err != nil {
			return nil, fmt.Errorf("scheme profile %q: %w", head.Name, err)
		}
		if head.Name == "" {
			return nil, fmt.Errorf("scheme profile #%d has no name", i)
		}
		// Tables are merged key by key into a copy of the base ones, sleep bands are replaced.
		s := base.clone()
		if err := node.Decode(&s); err != nil {
			return nil, fmt.Errorf("scheme profile %q: %w", head.Name, err)
		}
		s.Name = head.Name
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := profiles[s.Name]; dup {
			return nil, fmt.Errorf("scheme profile %q is defined twice", s.Name)
		}
		profiles[s.Name] = s
	}
	return profiles, nil
}
