package display

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/prices"
	"github.com/tOgg1/pricedisplay/internal/screen"
)

// Detail panel sizes.
var (
	DetailsCurrentSize = Size{Height: 3, Width: 17}
	DetailsSize        = Size{Height: 4, Width: 17}
)

const (
	nameWidth  = 10
	priceWidth = 6
)

// detailWindow is the text panel shared by the price details.
type detailWindow struct {
	frame
	bands    priceBands
	env      Env
	dayStart int
	dayEnd   int
	missing  rune
}

func newDetailWindow(pos Point, size Size, env Env) (detailWindow, error) {
	bands, err := bandsFromOptions(env.Options)
	if err != nil {
		return detailWindow{}, err
	}
	start, end, err := dayWindow(env.Options)
	if err != nil {
		return detailWindow{}, err
	}
	missing, err := env.Options.Rune("missing.symbol")
	if err != nil {
		return detailWindow{}, err
	}
	f, err := newFrame(size, pos, env.Surface)
	if err != nil {
		return detailWindow{}, err
	}
	return detailWindow{
		frame:    f,
		bands:    bands,
		env:      env,
		dayStart: start,
		dayEnd:   end,
		missing:  missing,
	}, nil
}

// dayWindow reads day.start and day.end clamped to [0, 24].
func dayWindow(opts config.Options) (int, int, error) {
	start, err := opts.Int("day.start")
	if err != nil {
		return 0, 0, err
	}
	end, err := opts.Int("day.end")
	if err != nil {
		return 0, 0, err
	}
	return max(0, min(24, start)), max(0, min(24, end)), nil
}

func (w *detailWindow) isDay(hour int) bool {
	return w.dayStart <= hour && hour < w.dayEnd
}

func (w *detailWindow) heading(text string) {
	w.win.Write(text, screen.Attr{Color: screen.ColorHeading})
	w.win.Write("\n", screen.Plain)
}

// detail writes a name and a price, or the missing glyph when there is no
// price.
func (w *detailWindow) detail(name string, price decimal.NullDecimal, linebreak bool) {
	w.win.Write(fmt.Sprintf("%-*s", nameWidth, name), screen.Plain)
	if price.Valid {
		w.win.Write(formatPrice(price.Decimal), screen.Attr{Color: w.bands.color(price), Bold: true})
	} else {
		w.win.Write(fmt.Sprintf("%*s", priceWidth, string(w.missing)), screen.Attr{Bold: true})
	}
	if linebreak {
		w.win.Write("\n", screen.Plain)
	}
}

func formatPrice(p decimal.Decimal) string {
	return fmt.Sprintf("%*s", priceWidth, p.StringFixed(2))
}

func average(s prices.Series) decimal.NullDecimal {
	st := s.Stats()
	if !st.HasData {
		return decimal.NullDecimal{}
	}
	return prices.Price(st.Average)
}

// DetailsCurrent shows the current hour and the running day or night average.
type DetailsCurrent struct {
	detailWindow
}

// NewDetailsCurrent places the current hour panel at pos.
func NewDetailsCurrent(pos Point, env Env) (*DetailsCurrent, error) {
	w, err := newDetailWindow(pos, DetailsCurrentSize, env)
	if err != nil {
		return nil, err
	}
	return &DetailsCurrent{detailWindow: w}, nil
}

// Update redraws the panel.
func (d *DetailsCurrent) Update(daily prices.Daily) {
	now := d.env.now()
	idx := d.bands.currentHourIndex(daily.Today, now)

	d.win.Clear()
	d.heading("CURRENT")
	d.detail("hour:", daily.Today.At(idx), true)

	if d.isDay(now.Hour()) {
		d.detail("day:", average(daily.Today.Slice(d.dayStart, d.dayEnd)), false)
	} else {
		var night prices.Series
		if now.Hour() < d.dayStart {
			night = prices.Concat(daily.Yesterday.Slice(d.dayEnd, len(daily.Yesterday)), daily.Today.Slice(0, d.dayStart))
		} else {
			night = prices.Concat(daily.Today.Slice(d.dayEnd, len(daily.Today)), daily.Tomorrow.Slice(0, d.dayStart))
		}
		d.detail("night:", average(night), false)
	}
	d.win.Refresh()
}

// DetailsNext shows the next hour and the averages of the coming night and
// day in the order they come.
type DetailsNext struct {
	detailWindow
}

// NewDetailsNext places the next hour panel at pos.
func NewDetailsNext(pos Point, env Env) (*DetailsNext, error) {
	w, err := newDetailWindow(pos, DetailsSize, env)
	if err != nil {
		return nil, err
	}
	return &DetailsNext{detailWindow: w}, nil
}

// Update redraws the panel.
func (d *DetailsNext) Update(daily prices.Daily) {
	now := d.env.now()
	idx := d.bands.currentHourIndex(daily.Today, now)

	d.win.Clear()
	d.heading("NEXT")
	d.detail("hour:", prices.Concat(daily.Today, daily.Tomorrow).At(idx+1), true)

	if d.isDay(now.Hour()) {
		d.detail("night:", d.nextNight(daily, now.Hour()), true)
		d.detail("day:", d.nextDay(daily, now.Hour()), false)
	} else {
		d.detail("day:", d.nextDay(daily, now.Hour()), true)
		d.detail("night:", d.nextNight(daily, now.Hour()), false)
	}
	d.win.Refresh()
}

func (d *DetailsNext) nextDay(daily prices.Daily, hour int) decimal.NullDecimal {
	if hour < d.dayStart {
		return average(daily.Today.Slice(d.dayStart, d.dayEnd))
	}
	if !daily.Tomorrow.Stats().HasData {
		return decimal.NullDecimal{}
	}
	return average(daily.Tomorrow.Slice(d.dayStart, d.dayEnd))
}

// nextNight is tonight; once tonight has begun the next night is beyond the
// data.
func (d *DetailsNext) nextNight(daily prices.Daily, hour int) decimal.NullDecimal {
	if hour >= d.dayEnd || !daily.Tomorrow.Stats().HasData {
		return decimal.NullDecimal{}
	}
	night := prices.Concat(daily.Today.Slice(d.dayEnd, len(daily.Today)), daily.Tomorrow.Slice(0, d.dayStart))
	return average(night)
}

// DetailsDay shows the highest, average and lowest price of one day.
type DetailsDay struct {
	detailWindow
	title string
	pick  func(prices.Daily) prices.Series
}

// NewDetailsToday places today's summary at pos.
func NewDetailsToday(pos Point, env Env) (*DetailsDay, error) {
	return newDetailsDay(pos, env, "TODAY", func(d prices.Daily) prices.Series { return d.Today })
}

// NewDetailsTomorrow places tomorrow's summary at pos.
func NewDetailsTomorrow(pos Point, env Env) (*DetailsDay, error) {
	return newDetailsDay(pos, env, "TOMORROW", func(d prices.Daily) prices.Series { return d.Tomorrow })
}

func newDetailsDay(pos Point, env Env, title string, pick func(prices.Daily) prices.Series) (*DetailsDay, error) {
	w, err := newDetailWindow(pos, DetailsSize, env)
	if err != nil {
		return nil, err
	}
	return &DetailsDay{detailWindow: w, title: title, pick: pick}, nil
}

// Update redraws the panel.
func (d *DetailsDay) Update(daily prices.Daily) {
	st := d.pick(daily).Stats()

	d.win.Clear()
	d.heading(d.title)
	if !st.HasData {
		d.detail("highest:", decimal.NullDecimal{}, true)
		d.detail("average:", decimal.NullDecimal{}, true)
		d.detail("lowest:", decimal.NullDecimal{}, false)
	} else {
		d.detail("highest:", prices.Price(st.High), true)
		d.detail("average:", prices.Price(st.Average), true)
		d.detail("lowest:", prices.Price(st.Low), false)
	}
	d.win.Refresh()
}
