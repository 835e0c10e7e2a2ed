package display

import "fmt"

// SizeError reports a panel that is larger than the space it is placed in.
// Height and Width are what the panel needs.
type SizeError struct {
	Height int
	Width  int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("terminal window is too small, price display requires at least %d lines and %d cols", e.Height, e.Width)
}

// PositionError reports a panel placed (partly) outside its parent.
type PositionError struct {
	Y int
	X int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("window at (%d, %d) does not fit in the terminal", e.Y, e.X)
}

// CollectionSizeError reports row or column sizes that do not match a
// collection's element grid or do not fit in it.
type CollectionSizeError struct {
	Reason string
}

func (e *CollectionSizeError) Error() string {
	return "invalid collection layout: " + e.Reason
}
