// Package ui renders invocation results in terminal, text or JSON form.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/highlight/pkg/highlight"
	"github.com/arthur-debert/highlight/pkg/types"
	"github.com/arthur-debert/highlight/pkg/ui/json"
	"github.com/arthur-debert/highlight/pkg/ui/terminal"
	"github.com/arthur-debert/highlight/pkg/ui/text"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderHighlight writes the highlighted text of a result
	RenderHighlight(result *highlight.Result) error

	// RenderThemes writes a theme listing
	RenderThemes(themes []types.ThemeDescription) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error
}

var (
	_ Renderer = (*terminal.Renderer)(nil)
	_ Renderer = (*text.Renderer)(nil)
	_ Renderer = (*json.Renderer)(nil)
)

// NewRenderer creates a new renderer based on the specified format.
// It detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

// Render writes result with r: the listing when there is one, otherwise
// the highlighted text.
func Render(r Renderer, result *highlight.Result) error {
	if result.Themes != nil {
		return r.RenderThemes(result.Themes)
	}
	return r.RenderHighlight(result)
}
