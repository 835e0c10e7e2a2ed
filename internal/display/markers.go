package display

import "github.com/tOgg1/pricedisplay/internal/prices"

// AddPadding adds a blank row above the positive side and below the negative
// side so the carets always have room.
func AddPadding(pos, neg Grid, width int) (Grid, Grid) {
	padded := make(Grid, 0, len(pos)+1)
	padded = append(padded, blankRow(width))
	padded = append(padded, pos...)
	neg = append(neg, blankRow(width))
	return padded, neg
}

func inColumn(lines Grid, col int) bool {
	return len(lines) > 0 && col >= 0 && col < len(lines[0])
}

// AddSymbolAbove places sym in column col right above the top of a positive
// bar, searching from the top row down. Without a bar the symbol lands on
// the last row. Columns outside the grid leave it unchanged.
func AddSymbolAbove(lines Grid, col int, sym rune) Grid {
	if !inColumn(lines, col) {
		return lines
	}
	if len(lines) == 1 {
		lines[0][col] = sym
		return lines
	}

	for i := 0; i < len(lines)-1; i++ {
		if lines[i][col] == blank && lines[i+1][col] != blank {
			lines[i][col] = sym
			break
		}
		if i == len(lines)-2 {
			lines[i+1][col] = sym
			break
		}
	}
	return lines
}

// AddSymbolBelow places sym in column col right below the end of a negative
// bar, searching from the bottom row up. Columns outside the grid leave it
// unchanged.
func AddSymbolBelow(lines Grid, col int, sym rune) Grid {
	if !inColumn(lines, col) {
		return lines
	}
	if len(lines) == 1 {
		lines[0][col] = sym
		return lines
	}

	// A single negative row: an empty or full cell means no visible bar.
	if len(lines) == 2 {
		if c := lines[0][col]; c == blank || c == fullBlock {
			lines[0][col] = sym
		} else {
			lines[1][col] = sym
		}
		return lines
	}

	iMax := len(lines) - 2
	for i := iMax; i > 0; i-- {
		prev, cur, next := lines[i+1][col], lines[i][col], lines[i-1][col]

		if i == iMax && cur != blank && next == blank {
			lines[i+1][col] = sym
			break
		}
		if prev != blank && cur != blank && next == blank {
			lines[i+1][col] = sym
			break
		}
		if i == 1 {
			if next == blank || next == fullBlock {
				lines[0][col] = sym
			} else {
				lines[1][col] = sym
			}
			break
		}
	}
	return lines
}

// AddMissing marks every null column on the row next to the axis: the last
// positive row when the positive side has bars, else the first negative row.
func AddMissing(pos, neg Grid, window prices.Series, sym rune) (Grid, Grid) {
	for col, p := range window {
		if p.Valid {
			continue
		}
		if len(pos) > 1 {
			if col < pos.Width() {
				pos[len(pos)-1][col] = sym
			}
		} else if len(neg) > 0 && col < neg.Width() {
			neg[0][col] = sym
		}
	}
	return pos, neg
}
