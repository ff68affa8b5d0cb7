package date

import "fmt"

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// Last returns the range of the n days ending on 'on' (included).
//
// Last(30, d) is the aggregation window used for the 30 days rollups.
func Last(n int, on Date) Range {
	if n < 1 {
		n = 1
	}
	return Range{From: on.Add(1 - n), To: on}
}

// Upto returns the range of every day up to 'on' (included).
func Upto(on Date) Range { return Range{To: on} }

// Contains return true date is included in the range (boundaries included).
//
// A zero From is unbounded.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	return !date.After(r.To)
}

// Days returns the number of days in the range, boundaries included.
func (r Range) Days() int {
	if r.From.IsZero() || r.To.Before(r.From) {
		return 0
	}
	return r.To.DaysSince(r.From) + 1
}

// String returns the range as "from..to".
func (r Range) String() string {
	if r.From.IsZero() {
		return fmt.Sprintf("..%s", r.To)
	}
	return fmt.Sprintf("%s..%s", r.From, r.To)
}
