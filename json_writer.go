package vitals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// entryWriter builds a JSON object with a fixed field order, so that journal lines stay
// stable and diff-friendly. Its zero value is ready to use.
type entryWriter struct {
	bytes.Buffer
	err error
}

// Append adds a key-value pair. The value is marshaled with json.Marshal.
func (w *entryWriter) Append(key string, value any) *entryWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	fmt.Fprintf(w, "%q:", key)
	w.Write(raw)
	w.WriteString(",")
	return w
}

// Optional appends the key-value pair only if value is not its type's zero value.
func (w *entryWriter) Optional(key string, value any) *entryWriter {
	if w.err != nil {
		return w
	}
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// Money appends the amount of m under key, only if m is not zero.
func (w *entryWriter) Money(key string, m Money) *entryWriter {
	if m.IsZero() {
		return w
	}
	return w.Append(key, m.value)
}

// MarshalJSON wraps the content in braces.
func (w *entryWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	out := make([]byte, 0, len(content)+2)
	out = append(out, '{')
	out = append(out, content...)
	return append(out, '}'), nil
}
