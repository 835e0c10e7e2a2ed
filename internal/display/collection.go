package display

import (
	"github.com/tOgg1/pricedisplay/internal/prices"
)

// Collection arranges panels in a grid inside its bounding box. Children are
// placed on the same surface as the collection, at absolute positions.
type Collection struct {
	box     BBox
	padding Size
	env     Env
	panels  []Panel
}

// NewCollection reserves a size box at pos. Cells of the grid are separated
// by padding.
func NewCollection(pos Point, size Size, padding Size, env Env) (*Collection, error) {
	box := NewBBox(size, pos)
	if err := fitsInside(box, env.Surface); err != nil {
		return nil, err
	}
	return &Collection{box: box, padding: padding, env: env}, nil
}

// NewSpacedCollection is a collection with margin around it. The margin must
// fit on the surface too.
func NewSpacedCollection(pos Point, size Size, margin Size, padding Size, env Env) (*Collection, error) {
	padded := NewBBox(size.Grow(2*margin.Height, 2*margin.Width), pos)
	if err := fitsInside(padded, env.Surface); err != nil {
		return nil, err
	}
	return NewCollection(pos.Offset(margin.Height, margin.Width), size, padding, env)
}

// BoundingBox returns the area reserved for the collection.
func (c *Collection) BoundingBox() BBox {
	return c.box
}

// Panels returns the placed children in placement order.
func (c *Collection) Panels() []Panel {
	return c.panels
}

// AddElements builds the grid of factories left to right, top to bottom. A
// nil factory leaves its cell empty. colSize and rowSize fix the column
// widths and row heights; when nil, a cell is as wide as the panel placed in
// it and a row as high as its last panel.
func (c *Collection) AddElements(elems [][]Factory, colSize, rowSize []int) error {
	if len(elems) == 0 {
		return nil
	}
	rows, cols := len(elems), len(elems[0])
	if err := c.verifyLayout(rows, cols, colSize, rowSize); err != nil {
		return err
	}

	pos := c.box.Pos
	var current Panel
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j < len(elems[i]) && elems[i][j] != nil {
				panel, err := elems[i][j](pos, c.env)
				if err != nil {
					return err
				}
				if err := c.fits(panel.BoundingBox(), i, j, colSize, rowSize); err != nil {
					return err
				}
				c.panels = append(c.panels, panel)
				current = panel
			}
			pos = c.nextColumn(pos, current, j, colSize)
		}
		pos = c.nextRow(pos, current, i, rowSize)
	}
	return nil
}

func (c *Collection) verifyLayout(rows, cols int, colSize, rowSize []int) error {
	if rowSize != nil {
		if len(rowSize) != rows {
			return &CollectionSizeError{Reason: "the number of element rows and row sizes is not the same"}
		}
		if sum(rowSize)+(rows-1)*c.padding.Height > c.box.Size.Height {
			return &CollectionSizeError{Reason: "can't fit the rows in the collection"}
		}
	}
	if colSize != nil {
		if len(colSize) != cols {
			return &CollectionSizeError{Reason: "the number of element columns and column sizes is not the same"}
		}
		if sum(colSize)+(cols-1)*c.padding.Width > c.box.Size.Width {
			return &CollectionSizeError{Reason: "can't fit the columns in the collection"}
		}
	}
	return nil
}

// fits checks a placed child against its fixed cell and the collection box.
func (c *Collection) fits(box BBox, i, j int, colSize, rowSize []int) error {
	if (colSize != nil && box.Size.Width > colSize[j]) || (rowSize != nil && box.Size.Height > rowSize[i]) {
		return &SizeError{Height: box.Size.Height, Width: box.Size.Width}
	}
	return fitsInBox(box, c.box)
}

func (c *Collection) nextColumn(pos Point, current Panel, j int, colSize []int) Point {
	width := 0
	switch {
	case colSize != nil:
		width = colSize[j]
	case current != nil:
		width = current.BoundingBox().Size.Width
	}
	return pos.Offset(0, width+c.padding.Width)
}

func (c *Collection) nextRow(pos Point, current Panel, i int, rowSize []int) Point {
	height := 0
	switch {
	case rowSize != nil:
		height = rowSize[i]
	case current != nil:
		height = current.BoundingBox().Size.Height
	}
	return Point{Y: pos.Y + height + c.padding.Height, X: c.box.Pos.X}
}

// Update redraws every child in placement order.
func (c *Collection) Update(daily prices.Daily) {
	for _, p := range c.panels {
		p.Update(daily)
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// HorizontalDetailsSize and VerticalDetailsSize are the detail blocks.
var (
	HorizontalDetailsSize    = Size{Height: 9, Width: 37}
	horizontalDetailsPadding = Size{Height: 1, Width: 3}

	VerticalDetailsSize    = Size{Height: 18, Width: 17}
	verticalDetailsPadding = Size{Height: 1, Width: 0}
)

// NewHorizontalDetails places the four detail panels in two rows of two.
func NewHorizontalDetails(pos Point, env Env) (*Collection, error) {
	c, err := NewCollection(pos, HorizontalDetailsSize, horizontalDetailsPadding, env)
	if err != nil {
		return nil, err
	}
	elems := [][]Factory{
		{asFactory(NewDetailsCurrent), asFactory(NewDetailsNext)},
		{asFactory(NewDetailsToday), asFactory(NewDetailsTomorrow)},
	}
	rowSize := []int{
		max(DetailsCurrentSize.Height, DetailsSize.Height),
		DetailsSize.Height,
	}
	if err := c.AddElements(elems, nil, rowSize); err != nil {
		return nil, err
	}
	return c, nil
}

// NewVerticalDetails stacks the four detail panels in one column.
func NewVerticalDetails(pos Point, env Env) (*Collection, error) {
	c, err := NewCollection(pos, VerticalDetailsSize, verticalDetailsPadding, env)
	if err != nil {
		return nil, err
	}
	elems := [][]Factory{
		{asFactory(NewDetailsCurrent)},
		{asFactory(NewDetailsNext)},
		{asFactory(NewDetailsToday)},
		{asFactory(NewDetailsTomorrow)},
	}
	if err := c.AddElements(elems, nil, nil); err != nil {
		return nil, err
	}
	return c, nil
}
