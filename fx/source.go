// Package fx obtains the TRY per USD exchange rate used to snapshot money records.
//
// The rate source is an external service that can be slow or down. A Service never
// fails: it degrades from a fresh cached rate to a fetched one, then to a stale one, then to
// the last rate persisted by a previous run, and finally to FallbackRate.
package fx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// ErrUnavailable is returned by a Source that could not produce a rate.
var ErrUnavailable = errors.New("exchange rate unavailable")

// Source fetches the current rate, the amount of TRY for 1 USD.
type Source interface {
	Fetch(ctx context.Context) (float64, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) (float64, error)

func (f SourceFunc) Fetch(ctx context.Context) (float64, error) { return f(ctx) }

const (
	// DefaultURL is a free endpoint publishing the rates of 1 USD.
	DefaultURL = "https://open.er-api.com/v6/latest/USD"
	// DefaultPath locates the TRY rate in the DefaultURL payload.
	DefaultPath = "$.rates.TRY"
)

// HTTPSource reads the rate from any JSON endpoint, Path being a JSONPath expression to the
// rate field.
type HTTPSource struct {
	URL    string
	Path   string
	Client *http.Client
}

// NewHTTPSource returns a source for url. Empty values use DefaultURL and DefaultPath.
func NewHTTPSource(url, path string) *HTTPSource {
	if url == "" {
		url = DefaultURL
	}
	if path == "" {
		path = DefaultPath
	}
	return &HTTPSource{URL: url, Path: path, Client: new(http.Client)}
}

// Name identifies the source in the rates it produces.
func (s *HTTPSource) Name() string {
	addr := strings.TrimPrefix(strings.TrimPrefix(s.URL, "https://"), "http://")
	host, _, _ := strings.Cut(addr, "/")
	return host
}

// Fetch GETs the URL and extracts the rate. Any failure wraps ErrUnavailable.
func (s *HTTPSource) Fetch(ctx context.Context) (float64, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	var jobj any
	if err := jwget(ctx, client, s.URL, &jobj); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	jval, err := jsonpath.Get(s.Path, jobj)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot read %q: %w", ErrUnavailable, s.Path, err)
	}
	// jsonpath returns either a single value or a list of matches: keep the first one.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	var rate float64
	switch v := jval.(type) {
	case float64:
		rate = v
	case string:
		// some APIs publish numbers as strings, sometimes with a decimal comma.
		rate, err = strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number: %w", ErrUnavailable, v, err)
		}
	default:
		return 0, fmt.Errorf("%w: %q is not a number: %v", ErrUnavailable, s.Path, jval)
	}
	if !usable(rate) {
		return 0, fmt.Errorf("%w: rate %v is not a positive finite number", ErrUnavailable, rate)
	}
	return rate, nil
}

// usable reports whether rate can snapshot money: positive and finite.
func usable(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 1)
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
