// Package display lays out and draws the price dashboard: the sparkline
// graph, the detail panels and the collections that arrange them.
package display

import "fmt"

// Point is a (row, column) position. Rows grow downward.
type Point struct {
	Y int
	X int
}

// Offset returns p moved by dy rows and dx columns.
func (p Point) Offset(dy, dx int) Point {
	return Point{Y: p.Y + dy, X: p.X + dx}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Y, p.X)
}

// Size is a height and width in cells.
type Size struct {
	Height int
	Width  int
}

// Grow returns s enlarged by dh rows and dw columns.
func (s Size) Grow(dh, dw int) Size {
	return Size{Height: s.Height + dh, Width: s.Width + dw}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Height, s.Width)
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	Pos  Point
	Size Size
}

// NewBBox creates a bounding box of size at pos.
func NewBBox(size Size, pos Point) BBox {
	return BBox{Pos: pos, Size: size}
}

func (b BBox) Top() int    { return b.Pos.Y }
func (b BBox) Left() int   { return b.Pos.X }
func (b BBox) Bottom() int { return b.Pos.Y + b.Size.Height }
func (b BBox) Right() int  { return b.Pos.X + b.Size.Width }

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	top := min(b.Top(), o.Top())
	left := min(b.Left(), o.Left())
	bottom := max(b.Bottom(), o.Bottom())
	right := max(b.Right(), o.Right())
	return BBox{
		Pos:  Point{Y: top, X: left},
		Size: Size{Height: bottom - top, Width: right - left},
	}
}

// Contains reports whether o lies within b. Shared edges count as inside.
func (b BBox) Contains(o BBox) bool {
	return b.Top() <= o.Top() &&
		b.Left() <= o.Left() &&
		b.Bottom() >= o.Bottom() &&
		b.Right() >= o.Right()
}

func (b BBox) String() string {
	return fmt.Sprintf("%s at %s", b.Size, b.Pos)
}
