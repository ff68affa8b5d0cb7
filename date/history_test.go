package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}
}

func TestAppendOverwrites(t *testing.T) {
	h := new(History[float64])
	on := New(2025, 7, 1)
	h.Append(on, 40).Append(on, 80)
	if h.Len() != 1 {
		t.Fatalf("History.Len() = %v want 1", h.Len())
	}
	if v, _ := h.Get(on); v != 80 {
		t.Errorf("Get() = %v want 80, the last value for a day wins", v)
	}
}

func TestLatest(t *testing.T) {
	h := new(History[float64])
	if day, last := h.Latest(); !day.IsZero() || last != 0 {
		t.Errorf("Latest() of an empty history = %v, %v want zero values", day, last)
	}
	h.Append(New(2025, 1, 20), 20).Append(New(2025, 1, 10), 10)
	if day, last := h.Latest(); day != New(2025, 1, 20) || last != 20 {
		t.Errorf("Latest() = %v, %v want 2025-01-20, 20", day, last)
	}
	if _, ok := h.Get(New(2025, 1, 15)); ok {
		t.Errorf("Get(2025-01-15) found a value for a day without one")
	}
}
