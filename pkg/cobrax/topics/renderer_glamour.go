package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour and leaves other
// topics untouched. Rendering errors fall back to the raw content.
type GlamourRenderer struct {
	// Style is a glamour standard style ("dark", "light", "notty"). Empty
	// picks one from the terminal background.
	Style string
	// Width wraps lines; 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer returns a renderer that detects the terminal style
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

func (r *GlamourRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Style != "" {
		options[0] = glamour.WithStandardStyle(r.Style)
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
