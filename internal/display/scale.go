package display

import (
	"github.com/shopspring/decimal"

	"github.com/tOgg1/pricedisplay/internal/prices"
)

// LineParams is the share of the graph one side of the zero axis gets: the
// number of rows and the price a full column represents.
type LineParams struct {
	Lines   int
	Maximum decimal.Decimal
}

// Limits returns the smallest and largest price in the window. Zero is
// always included so one-sided windows keep a baseline.
func Limits(window prices.Series) (decimal.Decimal, decimal.Decimal) {
	minimum, maximum := decimal.Zero, decimal.Zero
	for _, p := range window {
		if !p.Valid {
			continue
		}
		minimum = decimal.Min(minimum, p.Decimal)
		maximum = decimal.Max(maximum, p.Decimal)
	}
	return minimum, maximum
}

// SplitPrices separates positive and negative prices. Zero and null prices
// are null on both sides.
func SplitPrices(window prices.Series) (prices.Series, prices.Series) {
	pos := prices.Nulls(len(window))
	neg := prices.Nulls(len(window))
	for i, p := range window {
		switch {
		case !p.Valid:
		case p.Decimal.IsPositive():
			pos[i] = p
		case p.Decimal.IsNegative():
			neg[i] = p
		}
	}
	return pos, neg
}

// LineParameters divides numLines rows between the positive and negative
// sides so that one row stands for the same price on both sides.
func LineParameters(minimum, maximum decimal.Decimal, numLines int) (LineParams, LineParams) {
	switch {
	case minimum.IsNegative() && maximum.IsPositive():
		return scaledLineParameters(minimum, maximum, numLines)
	case minimum.IsNegative():
		return LineParams{Maximum: decimal.Zero}, LineParams{Lines: numLines, Maximum: minimum.Neg()}
	default:
		return LineParams{Lines: numLines, Maximum: maximum}, LineParams{Maximum: decimal.Zero}
	}
}

func scaledLineParameters(minimum, maximum decimal.Decimal, numLines int) (LineParams, LineParams) {
	negDominant := maximum.LessThan(minimum.Abs())

	// Not enough rows for both sides; the larger magnitude keeps them all.
	if numLines < 2 {
		if negDominant {
			return LineParams{Maximum: decimal.Zero}, LineParams{Lines: numLines, Maximum: minimum.Neg()}
		}
		return LineParams{Lines: numLines, Maximum: maximum}, LineParams{Maximum: decimal.Zero}
	}

	// The smaller side is rounded up so its scaled maximum never falls below
	// its largest magnitude.
	share := maximum.Mul(decimal.NewFromInt(int64(numLines))).Div(maximum.Sub(minimum))
	if negDominant {
		share = share.Ceil()
	} else {
		share = share.Floor()
	}
	numPos := max(1, min(numLines-1, int(share.IntPart())))
	numNeg := numLines - numPos

	posLines := decimal.NewFromInt(int64(numPos))
	negLines := decimal.NewFromInt(int64(numNeg))

	if negDominant {
		negMax := minimum.Neg()
		posMax := negMax.Mul(posLines).Div(negLines)
		return LineParams{Lines: numPos, Maximum: posMax}, LineParams{Lines: numNeg, Maximum: negMax}
	}
	negMax := maximum.Mul(negLines).Div(posLines)
	return LineParams{Lines: numPos, Maximum: maximum}, LineParams{Lines: numNeg, Maximum: negMax}
}

// ScaledSparklines renders the window as a bar chart split at zero. Positive
// rows come top to bottom ending at the axis; negative rows start at the axis.
// Negative prices are shifted up by the side's maximum so a column's fill is
// the complement of its magnitude, which reads correctly in reverse video.
func ScaledSparklines(window prices.Series, numLines int) (Grid, Grid) {
	minimum, maximum := Limits(window)
	posPrices, negPrices := SplitPrices(window)
	posParams, negParams := LineParameters(minimum, maximum, numLines)

	pos := Sparklines(posPrices, posParams.Lines, decimal.Zero, posParams.Maximum)

	shifted := prices.Nulls(len(negPrices))
	for i, p := range negPrices {
		if p.Valid {
			shifted[i] = prices.Price(p.Decimal.Add(negParams.Maximum))
		}
	}
	neg := Sparklines(shifted, negParams.Lines, decimal.Zero, negParams.Maximum)

	return pos, neg
}
