package screen

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// BandColors defines the price band colors.
type BandColors struct {
	Low  string
	Mid  string
	High string
}

// Theme defines the color tokens used when a canvas is rendered.
type Theme struct {
	Name    string
	Neutral string // empty keeps the terminal default foreground
	Heading string
	Bands   BandColors
}

// DefaultTheme mirrors the classic green/yellow/red terminal palette.
var DefaultTheme = Theme{
	Name:    "default",
	Neutral: "",
	Heading: "6",
	Bands: BandColors{
		Low:  "2",
		Mid:  "3",
		High: "1",
	},
}

// HighContrastTheme uses bright ANSI-256 colors for low contrast terminals.
var HighContrastTheme = Theme{
	Name:    "high-contrast",
	Neutral: "255",
	Heading: "51",
	Bands: BandColors{
		Low:  "46",
		Mid:  "226",
		High: "196",
	},
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// LookupTheme returns the named theme.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		return DefaultTheme, nil
	}
	theme, ok := Themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return theme, nil
}

func (t Theme) color(c Color) string {
	switch c {
	case ColorLow:
		return t.Bands.Low
	case ColorMid:
		return t.Bands.Mid
	case ColorHigh:
		return t.Bands.High
	case ColorHeading:
		return t.Heading
	default:
		return t.Neutral
	}
}

// Style converts a cell attribute into a lipgloss style.
func (t Theme) Style(attr Attr) lipgloss.Style {
	style := lipgloss.NewStyle()
	if fg := t.color(attr.Color); fg != "" {
		style = style.Foreground(lipgloss.Color(fg))
	}
	if attr.Bold {
		style = style.Bold(true)
	}
	if attr.Reverse {
		style = style.Reverse(true)
	}
	return style
}
