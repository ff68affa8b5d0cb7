package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/etnz/vitals/docs"
	"github.com/etnz/vitals/renderer"
	"google.golang.org/genai"
)

// Func implements a simple Function
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// Tools returns the functions reading the journal of identity.
//
// Dates default to today.
func Tools(identity string, j *vitals.Journal, s vitals.Scheme, today date.Date) []Function {
	dateParam := map[string]*genai.Schema{
		"date": {
			Type:        genai.TypeString,
			Description: "The day, formatted as YYYY-MM-DD. Today is the default.",
		},
	}

	dashboard := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Dashboard",
			Description: `Dashboard returns the avatar, the metrics of the last 30 days and the alerts on a given day.
			Each number comes with the terms it was computed from.`,
			Parameters: &genai.Schema{Type: genai.TypeObject, Properties: dateParam},
			Response:   &genai.Schema{Type: genai.TypeString, Description: "A markdown dashboard."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args, today)
			if err != nil {
				return failure(id, "Dashboard", err)
			}
			d, err := s.BuildDashboard(identity, j, on)
			if err != nil {
				return failure(id, "Dashboard", err)
			}
			return output(id, "Dashboard", renderer.RenderDashboard(d))
		},
	}

	netWorth := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "NetWorth",
			Description: `NetWorth returns the net worth on a given day and its daily history, in TRY with the USD equivalent.`,
			Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: dateParam},
			Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown net worth report."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args, today)
			if err != nil {
				return failure(id, "NetWorth", err)
			}
			return output(id, "NetWorth", renderer.RenderNetWorth(j.Upto(on).NetWorth()))
		},
	}

	var names []string
	if list, err := docs.List(); err == nil {
		for _, t := range list {
			names = append(names, fmt.Sprintf("%s (%s)", t.Name, t.Title))
		}
	}
	topic := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Topic",
			Description: "Topic returns the documentation of the formulas. Known topics: " + strings.Join(names, ", ") + ".",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString, Description: "The topic name."},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "The markdown topic."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["name"].(string)
			if !ok {
				return failure(id, "Topic", fmt.Errorf("argument 'name' is not a string as expected but %T", args["name"]))
			}
			content, err := docs.Topic(name)
			if err != nil {
				return failure(id, "Topic", err)
			}
			return output(id, "Topic", content)
		},
	}

	return []Function{dashboard, netWorth, topic}
}

func parseDate(args map[string]any, today date.Date) (date.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return today, nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return today, fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	on, err := date.Parse(sdate)
	if err != nil {
		return today, fmt.Errorf("argument 'date' must be formatted as YYYY-MM-DD, got %q", sdate)
	}
	return on, nil
}
