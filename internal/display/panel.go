package display

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/prices"
	"github.com/tOgg1/pricedisplay/internal/screen"
)

// Surface is the character surface panels are placed on.
type Surface interface {
	Size() (int, int)
	Window(height, width, y, x int) (*screen.Window, error)
}

// Panel is a rectangular part of the display that redraws itself from the
// current prices.
type Panel interface {
	BoundingBox() BBox
	Update(daily prices.Daily)
}

// Env is what every panel is built from.
type Env struct {
	Options config.Options
	Surface Surface
	Now     func() time.Time
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Factory builds a panel at pos.
type Factory func(pos Point, env Env) (Panel, error)

// asFactory adapts a constructor returning a concrete panel type.
func asFactory[P Panel](fn func(Point, Env) (P, error)) Factory {
	return func(pos Point, env Env) (Panel, error) {
		p, err := fn(pos, env)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// fitsInside checks that box lies within the surface.
func fitsInside(box BBox, parent Surface) error {
	height, width := parent.Size()
	return fitsInBox(box, NewBBox(Size{Height: height, Width: width}, Point{}))
}

// fitsInBox reports a SizeError when box is larger than parent and a
// PositionError when it is small enough but placed outside.
func fitsInBox(box, parent BBox) error {
	if parent.Size.Height < box.Size.Height || parent.Size.Width < box.Size.Width {
		return &SizeError{Height: box.Size.Height, Width: box.Size.Width}
	}
	if !parent.Contains(box) {
		return &PositionError{Y: box.Pos.Y, X: box.Pos.X}
	}
	return nil
}

// frame is the placed window shared by leaf panels.
type frame struct {
	box BBox
	win *screen.Window
}

func newFrame(size Size, pos Point, surface Surface) (frame, error) {
	box := NewBBox(size, pos)
	if err := fitsInside(box, surface); err != nil {
		return frame{}, err
	}
	win, err := surface.Window(size.Height, size.Width, pos.Y, pos.X)
	if err != nil {
		return frame{}, &PositionError{Y: pos.Y, X: pos.X}
	}
	return frame{box: box, win: win}, nil
}

// BoundingBox returns where the panel was placed.
func (f frame) BoundingBox() BBox {
	return f.box
}

// priceBands colors prices by the low and high thresholds and knows how to
// find the current hour on daylight saving days.
type priceBands struct {
	low            decimal.Decimal
	high           decimal.Decimal
	normalTimezone int
}

func bandsFromOptions(opts config.Options) (priceBands, error) {
	low, err := opts.Decimal("price.low")
	if err != nil {
		return priceBands{}, err
	}
	high, err := opts.Decimal("price.high")
	if err != nil {
		return priceBands{}, err
	}
	tz, err := opts.Int("data.normal_timezone")
	if err != nil {
		return priceBands{}, err
	}
	return priceBands{low: low, high: high, normalTimezone: tz}, nil
}

func (b priceBands) color(p decimal.NullDecimal) screen.Color {
	switch {
	case !p.Valid:
		return screen.ColorNeutral
	case p.Decimal.LessThan(b.low):
		return screen.ColorLow
	case p.Decimal.LessThan(b.high):
		return screen.ColorMid
	default:
		return screen.ColorHigh
	}
}

func (b priceBands) currentHourIndex(today prices.Series, now time.Time) int {
	return prices.CurrentHourIndex(len(today), now, b.normalTimezone)
}
