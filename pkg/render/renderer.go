package render

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/logging"
	"github.com/arthur-debert/highlight/pkg/types"
)

// Renderer highlights whole inputs with a SyntaxDatabase
type Renderer struct {
	db types.SyntaxDatabase
}

// NewRenderer returns a renderer over db
func NewRenderer(db types.SyntaxDatabase) *Renderer {
	return &Renderer{db: db}
}

// Highlight renders input with grammar and theme. Every line but the last
// is tokenized with its "\n"; the last line is tokenized without one, after
// trailing whitespace is trimmed, and is skipped when nothing is left.
func (r *Renderer) Highlight(input string, grammar types.GrammarRef, theme types.Theme, trueColors bool) (string, error) {
	logger := logging.GetLogger("render")

	lines := strings.Split(input, "\n")
	last := len(lines) - 1

	var out strings.Builder
	out.Grow(len(input))

	state, err := r.db.Begin(grammar, input)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to start highlighting").
			WithLabel("highlighting failed").
			WithDetail("grammar", grammar.Name())
	}
	fed := 0
	for i, line := range lines {
		if i < last {
			line += "\n"
		} else {
			line = strings.TrimRightFunc(line, unicode.IsSpace)
			if line == "" {
				break
			}
		}

		spans, next, err := r.db.TokenizeLine(grammar, line, theme, state)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInternal, "failed to highlight line %d", i+1).
				WithLabel("highlighting failed").
				WithDetail("line", i+1).
				WithDetail("grammar", grammar.Name())
		}
		for _, span := range spans {
			out.WriteString(Encode(span.Style, span.Text, trueColors))
		}
		state = next
		fed++
	}

	logger.Debug().
		Str("grammar", grammar.Name()).
		Str("theme", string(theme.ID)).
		Bool("true_colors", trueColors).
		Int("lines", fed).
		Msg("Rendered input")
	return out.String(), nil
}
