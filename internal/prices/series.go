// Package prices holds the hourly spot price model and its data source.
package prices

import (
	"github.com/shopspring/decimal"
)

// HoursInDay is the nominal length of a day's series.
const HoursInDay = 24

// Series is an hourly price sequence in cents. Missing hours are null.
// A series is 24 entries long, or 23/25 on daylight saving transition days.
type Series []decimal.NullDecimal

// Stats summarizes the non-null values of a series.
type Stats struct {
	HasData bool
	Low     decimal.Decimal
	High    decimal.Decimal
	Average decimal.Decimal // rounded to 2 decimals
}

// Nulls returns a series of n missing prices.
func Nulls(n int) Series {
	if n < 0 {
		n = 0
	}
	return make(Series, n)
}

// Price wraps a value as a present price.
func Price(v decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: v, Valid: true}
}

// Stats computes low, high and average over the non-null values.
func (s Series) Stats() Stats {
	var st Stats
	sum := decimal.Zero
	count := 0
	for _, p := range s {
		if !p.Valid {
			continue
		}
		if count == 0 || p.Decimal.LessThan(st.Low) {
			st.Low = p.Decimal
		}
		if count == 0 || p.Decimal.GreaterThan(st.High) {
			st.High = p.Decimal
		}
		sum = sum.Add(p.Decimal)
		count++
	}
	if count == 0 {
		return Stats{}
	}
	st.HasData = true
	st.Average = sum.Div(decimal.NewFromInt(int64(count))).Round(2)
	return st
}

// At returns the price at index i, or null when i is out of range.
func (s Series) At(i int) decimal.NullDecimal {
	if i < 0 || i >= len(s) {
		return decimal.NullDecimal{}
	}
	return s[i]
}

// Slice returns a copy of s[start:end] with both bounds clamped to the series.
func (s Series) Slice(start, end int) Series {
	start = clamp(start, 0, len(s))
	end = clamp(end, 0, len(s))
	if end < start {
		return Series{}
	}
	out := make(Series, end-start)
	copy(out, s[start:end])
	return out
}

// Index returns the first hour holding v, or -1.
func (s Series) Index(v decimal.Decimal) int {
	for i, p := range s {
		if p.Valid && p.Decimal.Equal(v) {
			return i
		}
	}
	return -1
}

// Concat joins series in order into a new series.
func Concat(parts ...Series) Series {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Series, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Daily is the three-day window of prices the display works on.
type Daily struct {
	Yesterday Series
	Today     Series
	Tomorrow  Series
}

// EmptyDaily returns three days of missing prices.
func EmptyDaily() Daily {
	return Daily{
		Yesterday: Nulls(HoursInDay),
		Today:     Nulls(HoursInDay),
		Tomorrow:  Nulls(HoursInDay),
	}
}

// All concatenates yesterday, today and tomorrow. Offsets into the result must
// use the actual lengths of the days.
func (d Daily) All() Series {
	return Concat(d.Yesterday, d.Today, d.Tomorrow)
}

// Rollover shifts the window by one day at midnight.
func (d Daily) Rollover() Daily {
	return Daily{
		Yesterday: d.Today,
		Today:     d.Tomorrow,
		Tomorrow:  Nulls(HoursInDay),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
