package prices

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tOgg1/pricedisplay/internal/logging"
)

// Source errors.
var (
	ErrNoData = errors.New("no price data")
)

// RequestError reports a failure to retrieve the raw data.
type RequestError struct {
	Source string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("error in retrieving the data: %s: %s", logging.RedactURL(e.Source), logging.Redact(e.Err.Error()))
}

func (e *RequestError) Unwrap() error { return e.Err }

// ParseError reports malformed price data.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "can't parse price data: " + e.Reason
}

const defaultTimeout = 30 * time.Second

// SourceConfig describes where prices come from and how entries are shaped.
type SourceConfig struct {
	// Location is an http(s) URL or a local file path.
	Location string

	// DateField holds the ISO-8601 start time of the hour.
	DateField string

	// PriceField holds the tax-inclusive price per kWh.
	PriceField string

	// PriceNoTaxField holds the tax-exclusive price per kWh. Optional.
	PriceNoTaxField string

	// Timeout bounds an HTTP request.
	Timeout time.Duration

	// Zone is the local time zone days are split in. Defaults to time.Local.
	Zone *time.Location
}

// Source fetches and parses the three-day price window.
type Source struct {
	cfg    SourceConfig
	client *http.Client
	now    func() time.Time
	logger zerolog.Logger
}

// NewSource creates a Source.
func NewSource(cfg SourceConfig, now func() time.Time) (*Source, error) {
	cfg.Location = strings.TrimSpace(cfg.Location)
	if cfg.Location == "" {
		return nil, errors.New("price source location is required")
	}
	if cfg.DateField == "" || cfg.PriceField == "" {
		return nil, errors.New("price source date and price fields are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Zone == nil {
		cfg.Zone = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Source{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		now:    now,
		logger: logging.Component(logging.ComponentPrices),
	}, nil
}

// Fetch retrieves the data and splits it into yesterday, today and tomorrow.
func (s *Source) Fetch(ctx context.Context) (Daily, error) {
	raw, err := s.retrieve(ctx)
	if err != nil {
		return Daily{}, err
	}
	entries, err := s.parse(raw)
	if err != nil {
		return Daily{}, err
	}
	daily := splitDays(entries, s.now().In(s.cfg.Zone))
	s.logger.Debug().
		Int("entries", len(entries)).
		Int("today_hours", len(daily.Today)).
		Bool("tomorrow", daily.Tomorrow.Stats().HasData).
		Msg("prices fetched")
	return daily, nil
}

func (s *Source) isHTTP() bool {
	return strings.HasPrefix(strings.ToLower(s.cfg.Location), "http")
}

func (s *Source) retrieve(ctx context.Context) ([]byte, error) {
	if !s.isHTTP() {
		data, err := os.ReadFile(s.cfg.Location)
		if err != nil {
			return nil, &RequestError{Source: s.cfg.Location, Err: err}
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Location, nil)
	if err != nil {
		return nil, &RequestError{Source: s.cfg.Location, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &RequestError{Source: s.cfg.Location, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Source: s.cfg.Location, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Source: s.cfg.Location, Err: fmt.Errorf("http %d", resp.StatusCode)}
	}
	return body, nil
}

type entry struct {
	at    time.Time
	price decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

func (s *Source) parse(raw []byte) ([]entry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, &ParseError{Reason: "can't decode json"}
	}
	if len(objects) == 0 {
		return nil, ErrNoData
	}

	entries := make([]entry, 0, len(objects))
	for _, obj := range objects {
		at, err := s.parseTime(obj)
		if err != nil {
			return nil, err
		}
		price, err := s.parsePrice(obj)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{at: at.In(s.cfg.Zone), price: price})
	}
	return entries, nil
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

func (s *Source) parseTime(obj map[string]any) (time.Time, error) {
	raw, ok := obj[s.cfg.DateField]
	if !ok {
		return time.Time{}, &ParseError{Reason: "no " + s.cfg.DateField + " in data"}
	}
	str, ok := raw.(string)
	if !ok {
		return time.Time{}, &ParseError{Reason: "timestamp is not a string"}
	}
	if t, err := time.Parse(time.RFC3339, str); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, str, s.cfg.Zone); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Reason: "timestamp is not in iso format"}
}

// parsePrice resolves the tax-inclusive and tax-exclusive fields. Negative
// prices are reported before tax, so a negative tax-exclusive price wins.
func (s *Source) parsePrice(obj map[string]any) (decimal.Decimal, error) {
	withTax, hasWithTax, err := numberField(obj, s.cfg.PriceField)
	if err != nil {
		return decimal.Zero, err
	}
	var noTax decimal.Decimal
	hasNoTax := false
	if s.cfg.PriceNoTaxField != "" {
		noTax, hasNoTax, err = numberField(obj, s.cfg.PriceNoTaxField)
		if err != nil {
			return decimal.Zero, err
		}
	}

	var price decimal.Decimal
	switch {
	case hasNoTax && noTax.IsNegative():
		price = noTax
	case hasWithTax:
		price = withTax
	case hasNoTax:
		price = noTax
	default:
		return decimal.Zero, &ParseError{Reason: "no " + s.cfg.PriceField + " in data"}
	}
	return price.Mul(hundred).Round(2), nil
}

func numberField(obj map[string]any, field string) (decimal.Decimal, bool, error) {
	raw, ok := obj[field]
	if !ok || raw == nil {
		return decimal.Zero, false, nil
	}
	var str string
	switch v := raw.(type) {
	case json.Number:
		str = v.String()
	case string:
		str = v
	default:
		return decimal.Zero, false, &ParseError{Reason: "price is not a number"}
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Zero, false, &ParseError{Reason: "price is not a number"}
	}
	return d, true, nil
}

// splitDays groups entries by local calendar day relative to now.
func splitDays(entries []entry, now time.Time) Daily {
	today := dayKey(now)
	yesterday := dayKey(now.AddDate(0, 0, -1))
	tomorrow := dayKey(now.AddDate(0, 0, 1))

	var dy, dt, dn []entry
	for _, e := range entries {
		switch dayKey(e.at) {
		case yesterday:
			dy = append(dy, e)
		case today:
			dt = append(dt, e)
		case tomorrow:
			dn = append(dn, e)
		}
	}
	return Daily{
		Yesterday: toSeries(dy),
		Today:     toSeries(dt),
		Tomorrow:  toSeries(dn),
	}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// toSeries places one day's entries by hour. The day length follows from the
// UTC offset change between the first and last entry.
func toSeries(entries []entry) Series {
	if len(entries) == 0 {
		return Nulls(HoursInDay)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].at.Before(entries[j].at)
	})

	first := OffsetHours(entries[0].at)
	last := OffsetHours(entries[len(entries)-1].at)
	hours := HoursInDay - (last - first)

	out := Nulls(hours)
	for _, e := range entries {
		idx := e.at.Hour() + (first - OffsetHours(e.at))
		if idx < 0 || idx >= len(out) {
			continue
		}
		out[idx] = Price(e.price)
	}
	return out
}
