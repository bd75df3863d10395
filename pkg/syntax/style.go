package syntax

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/arthur-debert/highlight/pkg/types"
)

// styleOf returns the chroma style carried by a theme, or chroma's fallback
// style when the theme was not produced from one.
func styleOf(theme types.Theme) *chroma.Style {
	if s, ok := theme.Definition.(*chroma.Style); ok && s != nil {
		return s
	}
	return styles.Fallback
}

// convertEntry maps the style entry of a token type to a types.Style.
// chroma entries inherit the document background; that background is
// dropped so only tokens with their own background carry one.
func convertEntry(style *chroma.Style, tt chroma.TokenType) types.Style {
	entry := style.Get(tt)
	doc := style.Get(chroma.Background).Background

	var s types.Style
	if entry.Colour.IsSet() {
		s.Foreground = colour(entry.Colour)
	}
	if entry.Background.IsSet() && entry.Background != doc {
		s.Background = colour(entry.Background)
	}
	s.Bold = entry.Bold == chroma.Yes
	s.Italic = entry.Italic == chroma.Yes
	s.Underline = entry.Underline == chroma.Yes
	return s
}

func colour(c chroma.Colour) types.RGB {
	return types.NewRGB(c.Red(), c.Green(), c.Blue())
}
