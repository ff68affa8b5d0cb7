package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/etnz/vitals/renderer"
	"github.com/google/subcommands"
)

// healthFlags are the flags describing one day of health logging.
type healthFlags struct {
	day       string
	sleep     *float64
	activity  string
	meal      string
	water     string
	processed string
	illness   string
	recent    string
}

func (h *healthFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&h.day, "d", "", "Day of the log (YYYY-MM-DD). Defaults to today.")
	f.Func("sleep", "Hours slept (0 to 24)", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		h.sleep = &v
		return nil
	})
	f.StringVar(&h.activity, "activity", "", "Activity level, from 1 (rest) to 5 (intense)")
	f.StringVar(&h.meal, "meal", "", "Meal quality (poor, normal, good)")
	f.StringVar(&h.water, "water", "", "Water intake (low, adequate, good)")
	f.StringVar(&h.processed, "processed", "", "Processed food level (high, medium, low)")
	f.StringVar(&h.illness, "illness", "", "Illness status (none, mild, severe)")
	f.StringVar(&h.recent, "recent", "", "Comma separated activity levels of the previous days, oldest first")
}

// input parses the flags, today is used when -d is not set.
func (h *healthFlags) input(today date.Date) (in vitals.DailyHealthInput, err error) {
	if in.On, err = parseDay(h.day, today); err != nil {
		return in, err
	}
	in.SleepHours = h.sleep
	if in.Activity, err = vitals.ParseActivity(h.activity); err != nil {
		return in, err
	}
	if in.Meal, err = vitals.Parse("mealQuality", h.meal, vitals.MealQualities...); err != nil {
		return in, err
	}
	if in.Water, err = vitals.Parse("waterIntake", h.water, vitals.WaterIntakes...); err != nil {
		return in, err
	}
	if in.ProcessedFood, err = vitals.Parse("processedFoodLevel", h.processed, vitals.ProcessedFoodLevels...); err != nil {
		return in, err
	}
	if in.Illness, err = vitals.Parse("illnessStatus", h.illness, vitals.IllnessStatuses...); err != nil {
		return in, err
	}
	if in.RecentActivity, err = parseLevels(h.recent); err != nil {
		return in, err
	}
	return in, in.Validate()
}

// parseLevels parses a comma separated list of activity levels.
func parseLevels(s string) ([]vitals.ActivityLevel, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var levels []vitals.ActivityLevel
	for i, v := range strings.Split(s, ",") {
		a, err := vitals.ParseActivity(v)
		if err != nil {
			return nil, fmt.Errorf("recent activity #%d: %w", i+1, err)
		}
		if a == 0 {
			return nil, fmt.Errorf("recent activity #%d is empty", i+1)
		}
		levels = append(levels, a)
	}
	return levels, nil
}

// psychologyFlags are the flags describing one day of psychology logging.
type psychologyFlags struct {
	day        string
	stress     string
	motivation string
	fatigue    string
}

func (p *psychologyFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.day, "d", "", "Day of the log (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&p.stress, "stress", "", "Stress level (calm, mild, high)")
	f.StringVar(&p.motivation, "motivation", "", "Motivation level (high, medium, low)")
	f.StringVar(&p.fatigue, "fatigue", "", "Fatigue level (fresh, tired, exhausted)")
}

func (p *psychologyFlags) input(today date.Date) (in vitals.DailyPsychologyInput, err error) {
	if in.On, err = parseDay(p.day, today); err != nil {
		return in, err
	}
	if in.Stress, err = vitals.Parse("stressLevel", p.stress, vitals.StressLevels...); err != nil {
		return in, err
	}
	if in.Motivation, err = vitals.Parse("motivationLevel", p.motivation, vitals.MotivationLevels...); err != nil {
		return in, err
	}
	if in.Fatigue, err = vitals.Parse("fatigueLevel", p.fatigue, vitals.FatigueLevels...); err != nil {
		return in, err
	}
	return in, nil
}

// parseDay parses s, or returns today when s is empty.
func parseDay(s string, today date.Date) (date.Date, error) {
	if s == "" {
		return today, nil
	}
	return date.Parse(s)
}

// today is the current day for the commands.
func today() date.Date { return date.FromTime(now()) }

// healthCmd scores a day without recording it.
type healthCmd struct {
	healthFlags
}

func (*healthCmd) Name() string     { return "health" }
func (*healthCmd) Synopsis() string { return "compute a Health Score" }
func (*healthCmd) Usage() string {
	return `vtl health [-sleep <hours>] [-activity <1-5>] [-meal <quality>] [-water <intake>] [-processed <level>] [-illness <status>] [-recent <levels>]

  Computes the Health Score of a day and prints its breakdown. Nothing is recorded.
  Absent factors are scored with the defaults of the scheme. See 'vtl topic health-score'.
`
}

func (c *healthCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	s, status := a.scheme()
	if status != subcommands.ExitSuccess {
		return status
	}
	in, err := c.input(today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, err := s.HealthScore(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing the health score: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderHealthBreakdown(b))
	return subcommands.ExitSuccess
}

// mentalCmd scores a day of psychology without recording it.
type mentalCmd struct {
	psychologyFlags
}

func (*mentalCmd) Name() string     { return "mental" }
func (*mentalCmd) Synopsis() string { return "compute a Mental Score" }
func (*mentalCmd) Usage() string {
	return `vtl mental -stress <level> -motivation <level> -fatigue <level>

  Computes the Mental Score of a day and prints its breakdown. Nothing is recorded.
  The three factors are required to get a score. See 'vtl topic mental-score'.
`
}

func (c *mentalCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	s, status := a.scheme()
	if status != subcommands.ExitSuccess {
		return status
	}
	in, err := c.input(today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, complete, err := s.MentalScore(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing the mental score: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderMentalBreakdown(b, complete))
	return subcommands.ExitSuccess
}
