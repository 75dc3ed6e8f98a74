package domain

// Color names a sticky-note background from the fixed palette.
type Color string

const (
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPink   Color = "pink"
	ColorPurple Color = "purple"
)

// Palette is an ordered set of colours new notes are drawn from.
type Palette []Color

// MultiPalette is the five-colour palette.
var MultiPalette = Palette{ColorYellow, ColorGreen, ColorBlue, ColorPink, ColorPurple}

// SinglePalette colours every note yellow.
var SinglePalette = Palette{ColorYellow}

// IsValid reports whether c is one of the known palette colours.
func (c Color) IsValid() bool {
	switch c {
	case ColorYellow, ColorGreen, ColorBlue, ColorPink, ColorPurple:
		return true
	}
	return false
}

// Default returns the colour used for notes stored without one.
func (p Palette) Default() Color {
	if len(p) == 0 {
		return ColorYellow
	}
	return p[0]
}

// Resolve returns c, or the palette default when c is empty or unknown.
func (p Palette) Resolve(c Color) Color {
	if c.IsValid() {
		return c
	}
	return p.Default()
}
