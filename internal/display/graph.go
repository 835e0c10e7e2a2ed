package display

import (
	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/prices"
	"github.com/tOgg1/pricedisplay/internal/screen"
)

// GraphMinSize is the smallest graph the layouts use.
var GraphMinSize = Size{Height: 12, Width: 36}

// graphFloor is the smallest graph that can be drawn at all: one bar row
// between the caret rows and one column of history.
var graphFloor = Size{Height: 3, Width: 2}

// GraphOptions configures the sparkline graph.
type GraphOptions struct {
	CaretAbove      rune
	CaretBelow      rune
	ExtremeLow      rune
	ExtremeHigh     rune
	ExtremesVisible bool
	Missing         rune
	PastHours       int
}

// GraphOptionsFrom reads the graph settings.
func GraphOptionsFrom(opts config.Options) (GraphOptions, error) {
	var (
		g   GraphOptions
		err error
	)
	if g.CaretAbove, err = opts.Rune("caret.style.above"); err != nil {
		return g, err
	}
	if g.CaretBelow, err = opts.Rune("caret.style.below"); err != nil {
		return g, err
	}
	if g.ExtremeLow, err = opts.Rune("extremes.style.low"); err != nil {
		return g, err
	}
	if g.ExtremeHigh, err = opts.Rune("extremes.style.high"); err != nil {
		return g, err
	}
	if g.ExtremesVisible, err = opts.Bool("extremes.visible"); err != nil {
		return g, err
	}
	if g.Missing, err = opts.Rune("missing.symbol"); err != nil {
		return g, err
	}
	if g.PastHours, err = opts.Int("caret.past_hours"); err != nil {
		return g, err
	}
	return g, nil
}

// Graph draws the sparkline of the prices around the current hour. The
// current hour is marked with carets above and below its column.
type Graph struct {
	frame
	opts   GraphOptions
	bands  priceBands
	env    Env
	window int
}

// NewGraph places a graph of the given size at pos.
func NewGraph(pos Point, size Size, env Env) (*Graph, error) {
	opts, err := GraphOptionsFrom(env.Options)
	if err != nil {
		return nil, err
	}
	bands, err := bandsFromOptions(env.Options)
	if err != nil {
		return nil, err
	}
	if size.Height < graphFloor.Height || size.Width < graphFloor.Width {
		return nil, &SizeError{Height: max(size.Height, graphFloor.Height), Width: max(size.Width, graphFloor.Width)}
	}

	opts.PastHours = max(0, min(size.Width-2, opts.PastHours))

	f, err := newFrame(size, pos, env.Surface)
	if err != nil {
		return nil, err
	}
	return &Graph{
		frame:  f,
		opts:   opts,
		bands:  bands,
		env:    env,
		window: size.Width - 1,
	}, nil
}

// GraphFactory returns a factory for graphs of the given size.
func GraphFactory(size Size) Factory {
	return asFactory(func(pos Point, env Env) (*Graph, error) {
		return NewGraph(pos, size, env)
	})
}

// PastHours is the caret column.
func (g *Graph) PastHours() int {
	return g.opts.PastHours
}

// VisiblePrices returns the window of prices shown: PastHours hours of
// history, the current hour and what follows, padded with nulls.
func (g *Graph) VisiblePrices(daily prices.Daily) prices.Series {
	all := daily.All()
	idx := g.bands.currentHourIndex(daily.Today, g.env.now())
	start := len(daily.Yesterday) + idx - g.opts.PastHours

	window := prices.Nulls(g.window)
	for i := range window {
		window[i] = all.At(start + i)
	}
	return window
}

// Lines renders the graph rows for the prices: positive rows with the upper
// caret row first, then negative rows ending with the lower caret row.
func (g *Graph) Lines(daily prices.Daily) (Grid, Grid) {
	return g.render(daily, g.VisiblePrices(daily))
}

func (g *Graph) render(daily prices.Daily, window prices.Series) (Grid, Grid) {
	numLines := g.box.Size.Height - 2

	pos, neg := ScaledSparklines(window, numLines)
	pos, neg = AddPadding(pos, neg, len(window))

	if g.opts.ExtremesVisible {
		pos, neg = g.addExtreme(pos, neg, daily, true)
		pos, neg = g.addExtreme(pos, neg, daily, false)
	}

	pos, neg = AddMissing(pos, neg, window, g.opts.Missing)
	pos = AddSymbolAbove(pos, g.opts.PastHours, g.opts.CaretAbove)
	neg = AddSymbolBelow(neg, g.opts.PastHours, g.opts.CaretBelow)
	return pos, neg
}

// addExtreme marks today's highest or lowest price, unless it is the
// current hour.
func (g *Graph) addExtreme(pos, neg Grid, daily prices.Daily, high bool) (Grid, Grid) {
	stats := daily.Today.Stats()
	if !stats.HasData {
		return pos, neg
	}
	value, sym := stats.Low, g.opts.ExtremeLow
	if high {
		value, sym = stats.High, g.opts.ExtremeHigh
	}

	hour := daily.Today.Index(value)
	current := g.bands.currentHourIndex(daily.Today, g.env.now())
	if hour == current {
		return pos, neg
	}

	col := hour - current + g.opts.PastHours
	if value.IsPositive() {
		pos = AddSymbolAbove(pos, col, sym)
	} else {
		neg = AddSymbolBelow(neg, col, sym)
	}
	return pos, neg
}

func (g *Graph) isSymbol(r rune) bool {
	switch r {
	case g.opts.CaretAbove, g.opts.CaretBelow, g.opts.ExtremeLow, g.opts.ExtremeHigh, g.opts.Missing:
		return true
	}
	return false
}

// Update redraws the graph.
func (g *Graph) Update(daily prices.Daily) {
	window := g.VisiblePrices(daily)
	pos, neg := g.render(daily, window)
	win := g.win

	win.Clear()

	win.Write(string(pos[0]), screen.Plain)
	win.Write("\n", screen.Plain)

	for _, row := range pos[1:] {
		for col, r := range row {
			attr := screen.Plain
			if !g.isSymbol(r) {
				attr = screen.Attr{Color: g.bands.color(window.At(col))}
			}
			win.Write(string(r), attr)
		}
		win.Write("\n", screen.Plain)
	}

	for _, row := range neg[:len(neg)-1] {
		for col, r := range row {
			attr := screen.Plain
			if p := window.At(col); !g.isSymbol(r) && p.Valid && p.Decimal.IsNegative() {
				attr = screen.Attr{Color: g.bands.color(p), Reverse: true}
			}
			win.Write(string(r), attr)
		}
		win.Write("\n", screen.Plain)
	}

	win.Write(string(neg[len(neg)-1]), screen.Plain)
	win.Refresh()
}
