package display

import (
	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/logging"
)

// Layout is an arrangement of the graph and the detail panels.
type Layout string

const (
	LayoutMinimal    Layout = config.LayoutMinimal
	LayoutHorizontal Layout = config.LayoutHorizontal
	LayoutVertical   Layout = config.LayoutVertical
)

// Spacing of the whole display.
var (
	DisplayMargin  = Size{Height: 1, Width: 3}
	DisplayPadding = Size{Height: 1, Width: 3}
)

// HorizontalSize is the graph beside the vertical details. The graph gets one
// row more than the details for its lower caret.
func HorizontalSize() Size {
	return Size{
		Height: VerticalDetailsSize.Height + DisplayPadding.Height,
		Width:  GraphMinSize.Width + DisplayPadding.Width + VerticalDetailsSize.Width,
	}
}

// VerticalSize is the graph above the horizontal details.
func VerticalSize() Size {
	return Size{
		Height: GraphMinSize.Height + DisplayPadding.Height + HorizontalDetailsSize.Height,
		Width:  HorizontalDetailsSize.Width,
	}
}

// MinimalSize is the graph alone.
func MinimalSize() Size {
	return GraphMinSize
}

// ChooseLayout picks the layout for the content area. The preferred layout
// wins when it fits; otherwise vertical, then horizontal, then minimal.
func ChooseLayout(content Size, preferred Layout) (Layout, Size) {
	contentBox := NewBBox(content, Point{})
	canUseVertical := contentBox.Contains(NewBBox(VerticalSize(), Point{}))
	canUseHorizontal := contentBox.Contains(NewBBox(HorizontalSize(), Point{}))

	switch {
	case preferred == LayoutMinimal:
		return LayoutMinimal, MinimalSize()
	case preferred == LayoutHorizontal && canUseHorizontal:
		return LayoutHorizontal, HorizontalSize()
	case preferred == LayoutVertical && canUseVertical:
		return LayoutVertical, VerticalSize()
	case canUseVertical:
		return LayoutVertical, VerticalSize()
	case canUseHorizontal:
		return LayoutHorizontal, HorizontalSize()
	default:
		return LayoutMinimal, MinimalSize()
	}
}

// PriceDisplay is the root collection: the graph and, space permitting, the
// details, centered in the margins of the terminal.
type PriceDisplay struct {
	*Collection
	layout Layout
}

// NewPriceDisplay chooses a layout for the surface and builds it at pos.
func NewPriceDisplay(pos Point, env Env) (*PriceDisplay, error) {
	preferred, err := env.Options.String("layout.preferred")
	if err != nil {
		return nil, err
	}
	reverse, err := env.Options.Bool("layout.reverse")
	if err != nil {
		return nil, err
	}

	height, width := env.Surface.Size()
	content := Size{
		Height: height - 2*DisplayPadding.Height,
		Width:  width - 2*DisplayPadding.Width,
	}
	layout, size := ChooseLayout(content, Layout(preferred))

	logger := logging.Component(logging.ComponentDisplay)
	logger.Debug().
		Str("preferred", preferred).
		Str("layout", string(layout)).
		Stringer("size", size).
		Msg("layout chosen")

	c, err := NewSpacedCollection(pos, size, DisplayMargin, DisplayPadding, env)
	if err != nil {
		return nil, err
	}

	var elems [][]Factory
	switch layout {
	case LayoutHorizontal:
		graph := GraphFactory(Size{Height: VerticalDetailsSize.Height + 1, Width: GraphMinSize.Width})
		row := []Factory{graph, asFactory(NewVerticalDetails)}
		if reverse {
			row[0], row[1] = row[1], row[0]
		}
		elems = [][]Factory{row}
	case LayoutVertical:
		graph := GraphFactory(Size{Height: GraphMinSize.Height, Width: HorizontalDetailsSize.Width})
		elems = [][]Factory{{graph}, {asFactory(NewHorizontalDetails)}}
		if reverse {
			elems[0], elems[1] = elems[1], elems[0]
		}
	default:
		elems = [][]Factory{{GraphFactory(GraphMinSize)}}
	}

	if err := c.AddElements(elems, nil, nil); err != nil {
		return nil, err
	}
	return &PriceDisplay{Collection: c, layout: layout}, nil
}

// Layout returns the chosen layout.
func (d *PriceDisplay) Layout() Layout {
	return d.layout
}
