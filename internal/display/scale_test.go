package display

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitsIncludeZero(t *testing.T) {
	tests := []struct {
		name     string
		values   []any
		min, max string
	}{
		{name: "positive", values: []any{3, 7, nil}, min: "0", max: "7"},
		{name: "negative", values: []any{-3, -7}, min: "-7", max: "0"},
		{name: "mixed", values: []any{-2, nil, 5}, min: "-2", max: "5"},
		{name: "empty", values: []any{nil, nil}, min: "0", max: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := Limits(series(t, tt.values...))
			require.Equal(t, tt.min, lo.String())
			require.Equal(t, tt.max, hi.String())
		})
	}
}

func TestSplitPrices(t *testing.T) {
	pos, neg := SplitPrices(series(t, 3, -2, 0, nil))

	require.True(t, pos[0].Valid)
	require.False(t, pos[1].Valid)
	require.False(t, pos[2].Valid)
	require.False(t, pos[3].Valid)

	require.False(t, neg[0].Valid)
	require.True(t, neg[1].Valid)
	require.False(t, neg[2].Valid)
	require.False(t, neg[3].Valid)
}

func TestScaledSparklinesConserveRows(t *testing.T) {
	tests := []struct {
		name    string
		values  []any
		lines   int
		wantPos int
		wantNeg int
	}{
		{name: "positive only", values: []any{1, 5, 3}, lines: 10, wantPos: 10, wantNeg: 0},
		{name: "negative only", values: []any{-1, -5, nil}, lines: 10, wantPos: 0, wantNeg: 10},
		{name: "all null", values: []any{nil, nil}, lines: 4, wantPos: 4, wantNeg: 0},
		{name: "zeros", values: []any{0, 0}, lines: 4, wantPos: 4, wantNeg: 0},
		{name: "mixed", values: []any{-10, 0, 5}, lines: 8, wantPos: 3, wantNeg: 5},
		{name: "tiny negative keeps a row", values: []any{-1, 1000}, lines: 10, wantPos: 9, wantNeg: 1},
		{name: "tiny positive keeps a row", values: []any{1, -1000}, lines: 10, wantPos: 1, wantNeg: 9},
		{name: "one row goes to the larger side", values: []any{-3, 2}, lines: 1, wantPos: 0, wantNeg: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := series(t, tt.values...)
			pos, neg := ScaledSparklines(window, tt.lines)

			require.Len(t, pos, tt.wantPos)
			require.Len(t, neg, tt.wantNeg)
			require.Equal(t, tt.lines, len(pos)+len(neg))
			requireSameWidth(t, pos, len(window))
			requireSameWidth(t, neg, len(window))
		})
	}
}

func TestLineParametersProportional(t *testing.T) {
	lo, hi := Limits(series(t, -10, 0, 5))
	pos, neg := LineParameters(lo, hi, 8)

	require.Equal(t, 8, pos.Lines+neg.Lines)
	require.InDelta(t, 8.0*5/15, float64(pos.Lines), 1)
	require.InDelta(t, 8.0*10/15, float64(neg.Lines), 1)
	require.Equal(t, "10", neg.Maximum.String())
}

func TestLineParametersMatchScaleAcrossAxis(t *testing.T) {
	lo, hi := Limits(series(t, -5, -2, 0, 3, 7))
	pos, neg := LineParameters(lo, hi, 6)

	require.GreaterOrEqual(t, pos.Lines, 1)
	require.GreaterOrEqual(t, neg.Lines, 1)
	require.Equal(t, 6, pos.Lines+neg.Lines)
	require.Equal(t, "7", pos.Maximum.String())

	posPerRow := pos.Maximum.Div(decimalInt(pos.Lines))
	negPerRow := neg.Maximum.Div(decimalInt(neg.Lines))
	require.True(t, posPerRow.Equal(negPerRow), "%s != %s", posPerRow, negPerRow)
}

func TestNegativeBarsAreComplemented(t *testing.T) {
	pos, neg := ScaledSparklines(series(t, -10, -5), 2)

	require.Empty(t, pos)
	// The deepest price leaves the column almost empty, so in reverse video
	// it shows as the longest bar.
	require.Equal(t, " ▁", column(neg, 0))
	require.Equal(t, " █", column(neg, 1))
}

func TestSmallerSideIsNeverClipped(t *testing.T) {
	tests := []struct {
		name    string
		values  []any
		lines   int
		wantPos int
		wantNeg int
	}{
		{name: "negative side rounds up", values: []any{-4.9, -4, 0, 3, 6}, lines: 10, wantPos: 5, wantNeg: 5},
		{name: "positive side rounds up", values: []any{-6, 3.2}, lines: 10, wantPos: 4, wantNeg: 6},
		{name: "exact split", values: []any{-3, 4}, lines: 7, wantPos: 4, wantNeg: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := Limits(series(t, tt.values...))
			pos, neg := LineParameters(lo, hi, tt.lines)

			require.Equal(t, tt.wantPos, pos.Lines)
			require.Equal(t, tt.wantNeg, neg.Lines)
			require.True(t, pos.Maximum.GreaterThanOrEqual(hi), "pos maximum %s < %s", pos.Maximum, hi)
			require.True(t, neg.Maximum.GreaterThanOrEqual(lo.Neg()), "neg maximum %s < %s", neg.Maximum, lo.Neg())
		})
	}
}

func TestDistinctNegativePricesStayDistinct(t *testing.T) {
	_, neg := ScaledSparklines(series(t, -4.9, -4, 0, 3, 6), 10)
	require.NotEqual(t, column(neg, 0), column(neg, 1))
}
