// Package screen provides the styled character surface the price display draws on.
//
// A Canvas is an in-memory grid of cells. Windows are rectangular views into a
// canvas with their own cursor, mirroring the addstr-style drawing model of a
// classic terminal library. The whole canvas is rendered to a string with
// lipgloss once per frame.
package screen

import (
	"fmt"
	"strings"
)

// Color is a logical color; the theme maps it to a terminal color.
type Color int

const (
	ColorNeutral Color = iota
	ColorLow
	ColorMid
	ColorHigh
	ColorHeading
)

// Attr describes how a cell is drawn.
type Attr struct {
	Color   Color
	Bold    bool
	Reverse bool
}

// Plain is the attribute for unstyled text.
var Plain = Attr{}

type cell struct {
	r    rune
	attr Attr
}

var blankCell = cell{r: ' '}

// Canvas is the root drawing surface.
type Canvas struct {
	height int
	width  int
	cells  [][]cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(height, width int) *Canvas {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	cells := make([][]cell, height)
	for y := range cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = blankCell
		}
		cells[y] = row
	}
	return &Canvas{height: height, width: width, cells: cells}
}

// Size returns the canvas height and width.
func (c *Canvas) Size() (int, int) {
	return c.height, c.width
}

// Window creates a sub-window at row y, column x.
func (c *Canvas) Window(height, width, y, x int) (*Window, error) {
	if height < 0 || width < 0 || y < 0 || x < 0 || y+height > c.height || x+width > c.width {
		return nil, fmt.Errorf("window %dx%d at (%d,%d) outside %dx%d canvas", height, width, y, x, c.height, c.width)
	}
	return &Window{canvas: c, y: y, x: x, height: height, width: width}, nil
}

// Lines returns the canvas content without styling.
func (c *Canvas) Lines() []string {
	out := make([]string, 0, c.height)
	for _, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		out = append(out, b.String())
	}
	return out
}

// AttrAt returns the attribute of a single cell.
func (c *Canvas) AttrAt(y, x int) Attr {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return Plain
	}
	return c.cells[y][x].attr
}

// Render draws the canvas with the theme, grouping runs of equal attributes.
func (c *Canvas) Render(theme Theme) string {
	lines := make([]string, 0, c.height)
	for _, row := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].attr == row[start].attr {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			b.WriteString(renderRun(theme, row[start].attr, string(run)))
			start = x
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func renderRun(theme Theme, attr Attr, text string) string {
	if attr == Plain && theme.Neutral == "" {
		return text
	}
	return theme.Style(attr).Render(text)
}

// Window is a rectangular region of a canvas with a write cursor.
type Window struct {
	canvas *Canvas
	y      int
	x      int
	height int
	width  int

	cy int
	cx int
}

// Size returns the window height and width.
func (w *Window) Size() (int, int) {
	return w.height, w.width
}

// Clear blanks the window and moves the cursor home.
func (w *Window) Clear() {
	for y := 0; y < w.height; y++ {
		row := w.canvas.cells[w.y+y]
		for x := 0; x < w.width; x++ {
			row[w.x+x] = blankCell
		}
	}
	w.cy, w.cx = 0, 0
}

// Write puts text at the cursor. A newline moves to the start of the next
// line, and text wraps at the right edge. Anything past the last line is
// dropped.
func (w *Window) Write(text string, attr Attr) {
	for _, r := range text {
		if r == '\n' {
			w.cy++
			w.cx = 0
			continue
		}
		if w.cx >= w.width {
			w.cy++
			w.cx = 0
		}
		if w.cy >= w.height {
			return
		}
		w.canvas.cells[w.y+w.cy][w.x+w.cx] = cell{r: r, attr: attr}
		w.cx++
	}
}

// Refresh is kept for parity with terminal libraries; the canvas is rendered
// as a whole by the program's View.
func (w *Window) Refresh() {}
