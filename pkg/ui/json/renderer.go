// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/highlight"
	"github.com/arthur-debert/highlight/pkg/types"
)

// Highlight is the JSON form of a rendered result
type Highlight struct {
	Grammar    string `json:"grammar"`
	Theme      string `json:"theme"`
	TrueColors bool   `json:"true_colors"`
	Rendered   string `json:"rendered"`
}

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
	}, nil
}

// RenderHighlight encodes the result with its escape sequences intact
func (r *Renderer) RenderHighlight(result *highlight.Result) error {
	return r.encoder.Encode(Highlight{
		Grammar:    result.Grammar,
		Theme:      string(result.Theme),
		TrueColors: result.Config.TrueColors,
		Rendered:   result.Rendered,
	})
}

// RenderThemes encodes the listing as an array
func (r *Renderer) RenderThemes(themes []types.ThemeDescription) error {
	if themes == nil {
		themes = []types.ThemeDescription{}
	}
	return r.encoder.Encode(themes)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]errors.Report{
		"error": errors.ReportOf(err),
	})
}
