// Package renderer explains scores, net worth and dashboards in markdown.
//
// Every term of a computation is rendered, so that a reader can recompute the result.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/etnz/vitals"
)

//go:embed templates/*.md
var embedded embed.FS

var templates = must(fs.Sub(embedded, "templates"))

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var funcs = template.FuncMap{
	"score": vitals.FormatScore,
	"num":   num,
	"join":  strings.Join,
	"icon":  icon,
	"opt":   opt,
}

// opt formats an optional score, "-" when absent.
func opt(score *int) string {
	if score == nil {
		return "-"
	}
	return vitals.FormatScore(*score)
}

// num formats a float with at most 2 decimals, and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func icon(s vitals.Severity) string {
	switch s {
	case vitals.Danger:
		return "🔴"
	case vitals.Warning:
		return "🟠"
	case vitals.Success:
		return "🟢"
	default:
		return "🔵"
	}
}

// RenderHealthBreakdown explains a Health Score.
func RenderHealthBreakdown(b vitals.HealthScoreBreakdown) string {
	return renderTemplate("health", "health.md", nil, b)
}

// RenderMentalBreakdown explains a Mental Score, or why there is none when ok is false.
func RenderMentalBreakdown(b vitals.MentalScoreBreakdown, ok bool) string {
	partials := map[string]string{"mental_body": "mental_score.md"}
	if !ok {
		partials["mental_body"] = "mental_incomplete.md"
	}
	return renderTemplate("mental", "mental.md", partials, b)
}

// RenderAvatar renders the avatar state and the rules that produced it.
func RenderAvatar(st vitals.AvatarState) string {
	return renderTemplate("avatar", "avatar.md", nil, st)
}

// RenderAlerts renders a list of alerts.
func RenderAlerts(alerts []vitals.Alert) string {
	return renderTemplate("alerts", "alerts.md", nil, alerts)
}

// RenderMetrics renders the 30 days rollup.
func RenderMetrics(m vitals.AggregatedMetrics) string {
	return renderTemplate("metrics", "metrics.md", nil, m)
}

// RenderDashboard renders the avatar, the metrics and the alerts of a dashboard.
func RenderDashboard(d vitals.Dashboard) string {
	partials := map[string]string{
		"avatar":  "avatar.md",
		"metrics": "metrics.md",
		"alerts":  "alerts.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
