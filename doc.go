// Package vitals scores daily health and psychology logs and keeps a two currency money
// journal, then rolls the last 30 days up into metrics, an avatar state and alerts.
//
// The engine is made of pure functions:
//   - Scores: a Scheme turns a DailyHealthInput into a Health Score and a
//     DailyPsychologyInput into a Mental Score, each with a breakdown of its terms.
//     Canonical is the default scheme, custom ones are loaded from YAML with LoadSchemes.
//   - Money: incomes, expenses and investments are recorded in TRY with their USD
//     counterpart, converted once with the exchange rate of the day (see RateSnapshot).
//     CalculateNetWorth replays them into a daily net worth history.
//   - Journal: every record of an identity, stored as one JSON object per line. See
//     LoadJournal and AppendEntry.
//   - Dashboard: Aggregate computes the metrics of a window, CalculateAvatarState and
//     GenerateAlerts interpret them. BuildDashboard does the three.
//
// This package serves as the foundational logic for the `vtl` command-line tool and its
// HTTP API, so that both always compute the same numbers.
package vitals
