package types

import "fmt"

// RGB is a 24-bit color. The zero value is "not set".
type RGB struct {
	R, G, B uint8
	Set     bool
}

// NewRGB returns a set color
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b, Set: true}
}

// Hex returns the color as #rrggbb, or "" when the color is not set
func (c RGB) Hex() string {
	if !c.Set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Style holds the display attributes of one span
type Style struct {
	Foreground RGB
	Background RGB
	Bold       bool
	Italic     bool
	Underline  bool
}

// IsZero reports whether the style carries no attribute at all
func (s Style) IsZero() bool {
	return s == Style{}
}

// StyleSpan is one contiguous run of text sharing a single style
type StyleSpan struct {
	Style Style
	Text  string
}
