package display

import (
	"github.com/shopspring/decimal"

	"github.com/tOgg1/pricedisplay/internal/prices"
)

// Grid is a block of equal-width character rows, top row first.
type Grid [][]rune

const blank = ' '

// blocks are the eighth-height bar glyphs, empty first.
var blocks = []rune(" ▁▂▃▄▅▆▇█")

const fullBlock = '█'

// blankGrid returns rows of width blanks.
func blankGrid(rows, width int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = blankRow(width)
	}
	return g
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = blank
	}
	return row
}

// Width returns the row width, or 0 for an empty grid.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Strings returns the rows as strings.
func (g Grid) Strings() []string {
	out := make([]string, len(g))
	for i, row := range g {
		out[i] = string(row)
	}
	return out
}

// Count returns how many cells hold r.
func (g Grid) Count(r rune) int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c == r {
				n++
			}
		}
	}
	return n
}

// quantize scales values to bar heights measured in eighths of a row. A null
// value scales to -1. Values are clamped into [minimum, maximum] and anything
// present is at least one eighth high.
func quantize(values prices.Series, numLines int, minimum, maximum decimal.Decimal) []int {
	heights := make([]int, len(values))
	span := maximum.Sub(minimum)
	steps := decimal.NewFromInt(int64(numLines*(len(blocks)-1) - 1))
	one := decimal.NewFromInt(1)

	for i, v := range values {
		if !v.Valid {
			heights[i] = -1
			continue
		}
		if span.IsZero() {
			heights[i] = 4 * numLines
			continue
		}
		x := decimal.Max(minimum, decimal.Min(maximum, v.Decimal))
		h := steps.Mul(x.Sub(minimum)).Div(span).Add(one).RoundBank(0)
		heights[i] = int(h.IntPart())
	}
	return heights
}

// Sparklines renders values as a numLines-high bar chart scaled between
// minimum and maximum. Null values leave their column blank.
func Sparklines(values prices.Series, numLines int, minimum, maximum decimal.Decimal) Grid {
	if numLines <= 0 {
		return Grid{}
	}
	heights := quantize(values, numLines, minimum, maximum)
	grid := blankGrid(numLines, len(values))
	full := len(blocks) - 1

	for col, h := range heights {
		if h < 0 {
			continue
		}
		for row := numLines - 1; row >= 0; row-- {
			grid[row][col] = blocks[min(h, full)]
			h = max(0, h-full)
		}
	}
	return grid
}
