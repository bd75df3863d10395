package render

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/arthur-debert/highlight/pkg/types"
)

// Encode wraps text in the escape sequences for style. With trueColors the
// foreground is emitted as 24-bit color, otherwise as the nearest entry of
// the 256-color palette. The background is always emitted as 24-bit.
// Newlines are left outside the escape sequences; the text itself is never
// changed.
func Encode(style types.Style, text string, trueColors bool) string {
	if text == "" || style.IsZero() {
		return text
	}
	if !strings.Contains(text, "\n") {
		return encodeLine(style, text, trueColors)
	}

	parts := strings.Split(text, "\n")
	for i, part := range parts {
		parts[i] = encodeLine(style, part, trueColors)
	}
	return strings.Join(parts, "\n")
}

func encodeLine(style types.Style, text string, trueColors bool) string {
	if text == "" {
		return ""
	}

	profile := termenv.ANSI256
	if trueColors {
		profile = termenv.TrueColor
	}

	s := profile.String(text)
	if style.Foreground.Set {
		s = s.Foreground(profile.Color(style.Foreground.Hex()))
	}
	if style.Background.Set {
		s = s.Background(termenv.RGBColor(style.Background.Hex()))
	}
	if style.Bold {
		s = s.Bold()
	}
	if style.Italic {
		s = s.Italic()
	}
	if style.Underline {
		s = s.Underline()
	}
	return s.Styled(text)
}
