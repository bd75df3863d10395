// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/highlight"
	"github.com/arthur-debert/highlight/pkg/types"
	"github.com/arthur-debert/highlight/pkg/ui/styles"
)

// Renderer writes highlighted text as is and styles its own output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderHighlight writes the rendered text with its escape sequences
func (r *Renderer) RenderHighlight(result *highlight.Result) error {
	_, err := io.WriteString(r.output, result.Rendered)
	return err
}

// RenderThemes draws the listing as a table
func (r *Renderer) RenderThemes(themes []types.ThemeDescription) error {
	idStyle := styles.GetStyle("ThemeID")
	marker := styles.GetStyle("DefaultMarker").Render("default")
	muted := styles.GetStyle("Muted")

	data := pterm.TableData{{"ID", "Name", "Author", ""}}
	for _, theme := range themes {
		mark := ""
		if theme.Default {
			mark = marker
		}
		author := theme.Author
		if author == "" {
			author = muted.Render("-")
		}
		data = append(data, []string{idStyle.Render(string(theme.ID)), theme.Name, author, mark})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}

// RenderError renders an error with its label, location and cause
func (r *Renderer) RenderError(err error) error {
	report := errors.ReportOf(err)

	line := styles.GetStyle("Error").Render("Error:") + " " + report.Message
	if report.Code != errors.ErrUnknown {
		line += " " + styles.GetStyle("ErrorCode").Render("["+string(report.Code)+"]")
	}
	if _, werr := fmt.Fprintln(r.output, line); werr != nil {
		return werr
	}

	if report.Location != "" {
		label := report.Label
		if label == "" {
			label = report.Message
		}
		if _, werr := fmt.Fprintf(r.output, "  %s %s\n",
			styles.GetStyle("Location").Render(report.Location),
			styles.GetStyle("ErrorLabel").Render(label)); werr != nil {
			return werr
		}
	}
	if report.Cause != "" {
		if _, werr := fmt.Fprintf(r.output, "  %s %s\n",
			styles.GetStyle("Muted").Render("caused by:"), report.Cause); werr != nil {
			return werr
		}
	}
	return nil
}
