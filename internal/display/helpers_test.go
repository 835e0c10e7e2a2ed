package display

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/prices"
	"github.com/tOgg1/pricedisplay/internal/screen"
)

func testOptions() config.Options {
	return config.Options{
		"price.low":            "5",
		"price.high":           "15",
		"data.normal_timezone": 2,
		"layout.preferred":     "horizontal",
		"layout.reverse":       false,
		"caret.style.above":    "▼",
		"caret.style.below":    "▲",
		"caret.past_hours":     8,
		"extremes.visible":     false,
		"extremes.style.low":   "∨",
		"extremes.style.high":  "∧",
		"missing.symbol":       "-",
		"day.start":            6,
		"day.end":              22,
	}
}

func at(hour int) time.Time {
	return time.Date(2026, 6, 10, hour, 30, 0, 0, time.UTC)
}

func testEnv(height, width, hour int, opts config.Options) (Env, *screen.Canvas) {
	canvas := screen.NewCanvas(height, width)
	return Env{
		Options: opts,
		Surface: canvas,
		Now:     func() time.Time { return at(hour) },
	}, canvas
}

// series builds a price series from ints, float64s and nils.
func series(t *testing.T, values ...any) prices.Series {
	t.Helper()
	out := make(prices.Series, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case nil:
		case int:
			out[i] = prices.Price(decimal.NewFromInt(int64(x)))
		case float64:
			out[i] = prices.Price(decimal.NewFromFloat(x))
		default:
			t.Fatalf("unsupported value %T", v)
		}
	}
	return out
}

// hourly builds a day of prices from f(hour).
func hourly(f func(hour int) int) prices.Series {
	out := prices.Nulls(prices.HoursInDay)
	for h := range out {
		out[h] = prices.Price(decimal.NewFromInt(int64(f(h))))
	}
	return out
}

func decimalInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func trimmed(canvas *screen.Canvas) []string {
	lines := canvas.Lines()
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func detailLine(name, price string) string {
	return fmt.Sprintf("%-10s%6s", name, price)
}

// column returns the runes of one column, top to bottom.
func column(g Grid, col int) string {
	var b strings.Builder
	for _, row := range g {
		b.WriteRune(row[col])
	}
	return b.String()
}

func requireSameWidth(t *testing.T, g Grid, width int) {
	t.Helper()
	for i, row := range g {
		require.Len(t, row, width, "row %d", i)
	}
}
