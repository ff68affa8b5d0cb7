package vitals

import "testing"

func TestEntryWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w entryWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("ordered fields", func(t *testing.T) {
		var w entryWriter
		w.Append("type", "income").Append("a", 1)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"type":"income","a":1}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w entryWriter
		w.Append("a", 0) // a zero value is added by Append.
		w.Optional("b", "")
		w.Optional("c", 0)
		w.Optional("d", "hello")
		w.Money("e", TRY(0))
		w.Money("f", TRY(12.5))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"a":0,"d":"hello","f":12.5}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
