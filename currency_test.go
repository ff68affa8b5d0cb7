package vitals

import (
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/vitals/date"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestConvert(t *testing.T) {
	tests := []struct {
		amount, rate string
		want         string
	}{
		{"1000", "0", "0"},
		{"1000", "-34", "0"},
		{"0", "34", "0"},
		{"100", "34", "2.94"},
		{"34000", "34", "1000"},
		{"1", "3", "0.33"},
		{"2", "3", "0.67"},
		{"0.05", "2", "0.03"}, // half away from zero
		{"-100", "34", "-2.94"},
	}
	for _, tt := range tests {
		got := Convert(dec(tt.amount), dec(tt.rate))
		if !got.Equal(dec(tt.want)) {
			t.Errorf("Convert(%s, %s) = %v, want %s", tt.amount, tt.rate, got, tt.want)
		}
	}
}

func TestRateSnapshot(t *testing.T) {
	at := time.Date(2025, 5, 4, 15, 30, 0, 0, time.UTC)
	rate := ExchangeRate{Rate: dec("34"), Timestamp: at}
	snap := rate.Snapshot()
	if snap.On != date.New(2025, 5, 4) || !snap.Rate.Equal(dec("34")) {
		t.Errorf("Snapshot() = %+v", snap)
	}
	if got := snap.ToSecondary(TRY(340)); !got.Equal(USD(10)) {
		t.Errorf("ToSecondary(340) = %v, want %v", got, USD(10))
	}

	// the stored snapshot is what converts a record, not the current rate.
	inc, err := NewIncome("i1", snap.On, dec("680"), rate, "salary")
	if err != nil {
		t.Fatalf("NewIncome() error = %v", err)
	}
	rate.Rate = dec("40")
	if !inc.AmountUSD.Equal(USD(20)) {
		t.Errorf("AmountUSD = %v, want %v", inc.AmountUSD, USD(20))
	}
}

func TestFormat(t *testing.T) {
	if got, want := FormatUSD(dec("1234.56")), "$1,234.56"; got != want {
		t.Errorf("FormatUSD() = %q, want %q", got, want)
	}
	if got, want := FormatTRY(dec("1234.56")), "₺1,234.56"; got != want {
		t.Errorf("FormatTRY() = %q, want %q", got, want)
	}
	if got, want := FormatTRY(dec("10.005")), money.New(1001, Primary).Display(); got != want {
		t.Errorf("FormatTRY() = %q, want %q", got, want)
	}
	got := FormatDual(TRY(680), USD(20))
	if want := TRY(680).String() + " ($20.00)"; got != want {
		t.Errorf("FormatDual() = %q, want %q", got, want)
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("TRY + USD did not panic")
		}
	}()
	TRY(1).Add(USD(1))
}
