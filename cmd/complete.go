package cmd

import (
	"flag"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// values predicts the values of an enumeration.
func values[T ~string](vs ...T) predict.Set {
	set := make(predict.Set, len(vs))
	for i, v := range vs {
		set[i] = string(v)
	}
	return set
}

// predictors of the flag values, by flag name. Other flags take something.
var predictors = map[string]complete.Predictor{
	"data":       predict.Dirs("*"),
	"schemes":    predict.Files("*.yaml"),
	"scheme":     predict.Set{vitals.CanonicalName, vitals.SustainableName},
	"log":        predict.Set{"debug", "info", "warn", "error"},
	"activity":   predict.Set{"1", "2", "3", "4", "5"},
	"meal":       values(vitals.MealQualities...),
	"water":      values(vitals.WaterIntakes...),
	"processed":  values(vitals.ProcessedFoodLevels...),
	"illness":    values(vitals.IllnessStatuses...),
	"stress":     values(vitals.StressLevels...),
	"motivation": values(vitals.MotivationLevels...),
	"fatigue":    values(vitals.FatigueLevels...),
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := predictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the completion tree of the vtl command line, global is the set of global flags.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, c := range Commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(fs)}
	}
	if topic, ok := root.Sub["topic"]; ok {
		topics := predict.Set{docs.All}
		if infos, err := docs.List(); err == nil {
			for _, info := range infos {
				topics = append(topics, info.Name)
			}
		}
		topic.Args = topics
	}
	return root
}
