package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/vitals"
	md "github.com/nao1215/markdown"
)

// tableOptions keep headers as written and cells on a single line.
var tableOptions = md.TableOptions{AutoWrapText: false, AutoFormatHeaders: false}

// RenderNetWorth renders the net worth summary and its daily history.
func RenderNetWorth(nw vitals.NetWorth) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	s := nw.Summary
	if s.AsOf.IsZero() {
		doc.H1("Net Worth")
		doc.PlainText("No income, expense or investment recorded yet: net worth is " + s.NetWorth.String() + ".")
		return doc.String()
	}
	doc.H1(fmt.Sprintf("Net Worth on %s", s.AsOf))
	doc.PlainText(md.Bold(vitals.FormatDual(s.NetWorth, s.NetWorthUSD)))
	doc.LF() // a table never continues a paragraph
	doc.CustomTable(md.TableSet{
		Header: []string{"Component", "Amount"},
		Rows: [][]string{
			{"Total Income", s.TotalIncome.String()},
			{"Total Expenses", s.TotalExpenses.Neg().SignedString()},
			{fmt.Sprintf("Locked Capital (%d active)", s.Active), s.LockedCapital.Neg().SignedString()},
			{fmt.Sprintf("Realized Returns (%d claimed)", s.Claimed), s.RealizedReturns.SignedString()},
			{md.Bold("Net Worth"), md.Bold(s.NetWorth.String())},
		},
	}, tableOptions)
	if !s.RealizedPL.IsZero() {
		doc.PlainText(fmt.Sprintf("Realized returns include a profit/loss of %s.", s.RealizedPL.SignedString()))
	}

	doc.H2("History")
	table := md.TableSet{
		Header: []string{"Date", "Income", "Expenses", "Locked", "Realized", "Net", "Change"},
	}
	for _, snap := range nw.Snapshots {
		table.Rows = append(table.Rows, []string{
			snap.On.String(),
			snap.Income.String(),
			snap.Expenses.String(),
			snap.Locked.String(),
			snap.Realized.String(),
			snap.Net.String(),
			snap.ChangePercent.SignedString(),
		})
	}
	doc.CustomTable(table, tableOptions)
	return doc.String()
}

// RenderRate renders an exchange rate and where it comes from.
func RenderRate(r vitals.ExchangeRate) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Exchange Rate")
	doc.PlainText(fmt.Sprintf("1 %s = %s %s", vitals.Secondary, md.Bold(r.Rate.String()), vitals.Primary))
	rows := [][]string{
		{"Source", r.Source},
		{"As of", r.Timestamp.Format("2006-01-02 15:04:05 MST")},
	}
	if r.Stale {
		rows = append(rows, []string{"Status", md.Italic("stale, the source is unavailable")})
	} else {
		rows = append(rows, []string{"Status", "fresh"})
	}
	doc.LF()
	doc.CustomTable(md.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   rows,
	}, tableOptions)
	return doc.String()
}
