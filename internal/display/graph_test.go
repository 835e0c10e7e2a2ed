package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/prices"
	"github.com/tOgg1/pricedisplay/internal/screen"
)

func newTestGraph(t *testing.T, size Size, hour int, opts config.Options) (*Graph, *screen.Canvas) {
	t.Helper()
	env, canvas := testEnv(size.Height, size.Width, hour, opts)
	g, err := NewGraph(Point{}, size, env)
	require.NoError(t, err)
	return g, canvas
}

func dailyWithToday(today prices.Series) prices.Daily {
	d := prices.EmptyDaily()
	d.Today = today
	return d
}

func TestGraphAllPositive(t *testing.T) {
	opts := testOptions().With("caret.past_hours", 3)
	g, canvas := newTestGraph(t, Size{Height: 12, Width: 10}, 10, opts)
	daily := dailyWithToday(hourly(func(h int) int { return h + 1 }))

	window := g.VisiblePrices(daily)
	require.Len(t, window, 9)
	require.Equal(t, "8", window[0].Decimal.String())
	require.Equal(t, "11", window[3].Decimal.String())

	pos, neg := g.Lines(daily)
	require.Len(t, pos, 11)
	require.Equal(t, []string{"   ▲     "}, neg.Strings())
	require.Equal(t, 1, pos.Count('▼'))

	caretColumn := column(pos, 3)
	row := strings.IndexRune(caretColumn, '▼')
	require.GreaterOrEqual(t, row, 0)
	runes := []rune(caretColumn)
	row = len([]rune(caretColumn[:row]))
	require.Equal(t, strings.Repeat(" ", row), string(runes[:row]))
	require.NotEqual(t, ' ', runes[row+1])

	g.Update(daily)
	lines := canvas.Lines()
	require.Len(t, lines, 12)
	require.Equal(t, "   ▲", strings.TrimRight(lines[11], " "))
	require.Equal(t, '▼', []rune(lines[row])[3])

	require.Equal(t, screen.Attr{Color: screen.ColorHigh}, canvas.AttrAt(10, 8))
	require.Equal(t, screen.Attr{Color: screen.ColorMid}, canvas.AttrAt(10, 0))
	require.Equal(t, screen.Plain, canvas.AttrAt(row, 3))
}

func TestGraphMarksMissingHours(t *testing.T) {
	opts := testOptions().With("caret.past_hours", 3)
	g, canvas := newTestGraph(t, Size{Height: 12, Width: 10}, 22, opts)
	daily := dailyWithToday(hourly(func(h int) int { return h + 1 }))

	g.Update(daily)
	lines := canvas.Lines()

	bottom := []rune(lines[10])
	require.Equal(t, "----", string(bottom[5:9]))
	for col := 5; col < 9; col++ {
		require.Equal(t, screen.Plain, canvas.AttrAt(10, col))
	}
	require.Equal(t, "   ▲", strings.TrimRight(lines[11], " "))
}

func TestGraphCaretSitsAboveMissingCurrentHour(t *testing.T) {
	opts := testOptions().With("caret.past_hours", 3)
	g, canvas := newTestGraph(t, Size{Height: 12, Width: 10}, 10, opts)
	today := hourly(func(h int) int { return h + 1 })
	today[10] = decimal.NullDecimal{}

	pos, _ := g.Lines(dailyWithToday(today))
	caretCol := []rune(column(pos, 3))
	require.Equal(t, "▼-", string(caretCol[9:]))
	require.Equal(t, 1, pos.Count('▼'))

	g.Update(dailyWithToday(today))
	lines := canvas.Lines()
	require.Equal(t, '▼', []rune(lines[9])[3])
	require.Equal(t, '-', []rune(lines[10])[3])
}

func TestGraphNegativeBarsInReverseVideo(t *testing.T) {
	opts := testOptions().With("caret.past_hours", 3)
	g, canvas := newTestGraph(t, Size{Height: 12, Width: 10}, 10, opts)
	daily := dailyWithToday(hourly(func(h int) int { return h - 12 }))

	pos, neg := g.Lines(daily)
	require.Len(t, pos, 5)
	require.Len(t, neg, 7)
	require.Equal(t, 1, neg.Count('▲'))

	g.Update(daily)

	require.Equal(t, screen.Attr{Color: screen.ColorLow, Reverse: true}, canvas.AttrAt(5, 0))
	require.Equal(t, screen.Attr{Color: screen.ColorLow}, canvas.AttrAt(4, 8))
	// zero price is neither positive nor negative
	require.Equal(t, screen.Plain, canvas.AttrAt(5, 5))
}

func TestGraphExtremes(t *testing.T) {
	opts := testOptions().With("caret.past_hours", 3).With("extremes.visible", true)
	size := Size{Height: 12, Width: 10}

	tests := []struct {
		name     string
		today    func(h int) int
		wantPos  map[rune]int
		wantNeg  map[rune]int
		wantCols map[rune]int
	}{
		{
			name: "both above",
			today: func(h int) int {
				switch h {
				case 8:
					return 2
				case 12:
					return 20
				}
				return 10
			},
			wantPos:  map[rune]int{'∨': 1, '∧': 1},
			wantNeg:  map[rune]int{'∨': 0, '∧': 0},
			wantCols: map[rune]int{'∨': 1, '∧': 5},
		},
		{
			name: "low is the current hour",
			today: func(h int) int {
				switch h {
				case 10:
					return 2
				case 12:
					return 20
				}
				return 10
			},
			wantPos: map[rune]int{'∨': 0, '∧': 1},
			wantNeg: map[rune]int{'∨': 0, '∧': 0},
		},
		{
			name: "negative low below",
			today: func(h int) int {
				if h == 8 {
					return -4
				}
				return 10
			},
			wantPos:  map[rune]int{'∨': 0},
			wantNeg:  map[rune]int{'∨': 1},
			wantCols: map[rune]int{'∨': 1},
		},
		{
			name:    "off screen",
			today:   func(h int) int { return h + 1 },
			wantPos: map[rune]int{'∨': 0, '∧': 0},
			wantNeg: map[rune]int{'∨': 0, '∧': 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGraph(t, size, 10, opts)
			pos, neg := g.Lines(dailyWithToday(hourly(tt.today)))

			for sym, n := range tt.wantPos {
				require.Equal(t, n, pos.Count(sym), "pos %c", sym)
			}
			for sym, n := range tt.wantNeg {
				require.Equal(t, n, neg.Count(sym), "neg %c", sym)
			}
			for sym, col := range tt.wantCols {
				found := strings.ContainsRune(column(pos, col), sym) || strings.ContainsRune(column(neg, col), sym)
				require.True(t, found, "%c not in column %d", sym, col)
			}
		})
	}
}

func TestGraphClampsPastHours(t *testing.T) {
	g, _ := newTestGraph(t, Size{Height: 5, Width: 10}, 10, testOptions().With("caret.past_hours", 50))
	require.Equal(t, 8, g.PastHours())

	g, _ = newTestGraph(t, Size{Height: 5, Width: 10}, 10, testOptions().With("caret.past_hours", -2))
	require.Equal(t, 0, g.PastHours())
}

func TestNewGraphErrors(t *testing.T) {
	env, _ := testEnv(5, 5, 10, testOptions())
	_, err := NewGraph(Point{}, GraphMinSize, env)
	var sizeErr *SizeError
	require.True(t, errors.As(err, &sizeErr))
	require.Equal(t, SizeError{Height: 12, Width: 36}, *sizeErr)

	env, _ = testEnv(12, 36, 10, testOptions())
	_, err = NewGraph(Point{Y: 1}, GraphMinSize, env)
	var posErr *PositionError
	require.True(t, errors.As(err, &posErr))
	require.Equal(t, 1, posErr.Y)

	opts := testOptions()
	delete(opts, "caret.style.above")
	env, _ = testEnv(12, 36, 10, opts)
	_, err = NewGraph(Point{}, GraphMinSize, env)
	var missing *config.MissingOptionError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "caret.style.above", missing.Option)

	env, _ = testEnv(12, 36, 10, testOptions())
	_, err = NewGraph(Point{}, Size{Height: 2, Width: 36}, env)
	require.True(t, errors.As(err, &sizeErr))
}
