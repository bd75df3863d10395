// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/highlight"
	"github.com/arthur-debert/highlight/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderHighlight writes the input text with escape sequences removed
func (r *Renderer) RenderHighlight(result *highlight.Result) error {
	_, err := io.WriteString(r.output, ansi.Strip(result.Rendered))
	return err
}

// RenderThemes writes one tab-aligned row per theme. The default theme is
// marked with a "*".
func (r *Renderer) RenderThemes(themes []types.ThemeDescription) error {
	w := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tAUTHOR\tDEFAULT"); err != nil {
		return err
	}
	for _, theme := range themes {
		mark := ""
		if theme.Default {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", theme.ID, theme.Name, theme.Author, mark); err != nil {
			return err
		}
	}
	return w.Flush()
}

// RenderError writes the message, then the location and cause when known
func (r *Renderer) RenderError(err error) error {
	report := errors.ReportOf(err)
	if _, werr := fmt.Fprintf(r.output, "Error: %s\n", report.Message); werr != nil {
		return werr
	}
	if report.Location != "" {
		if _, werr := fmt.Fprintf(r.output, "  at %s: %s\n", report.Location, labelOrCode(report)); werr != nil {
			return werr
		}
	}
	if report.Cause != "" {
		if _, werr := fmt.Fprintf(r.output, "  caused by: %s\n", report.Cause); werr != nil {
			return werr
		}
	}
	return nil
}

func labelOrCode(report errors.Report) string {
	if report.Label != "" {
		return report.Label
	}
	return string(report.Code)
}
