package syntax

import (
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/types"
)

// state is the continuation state threaded between lines: the part of the
// document's token stream not yet handed out. skip counts the bytes of the
// first token already consumed by an earlier line. A state is never mutated
// once handed out.
type state struct {
	tokens []chroma.Token
	skip   int
}

// take returns the tokens covering the next n bytes of the stream, splitting
// a token that crosses the boundary, and the state left after them.
func (s *state) take(n int) ([]chroma.Token, *state) {
	if s == nil {
		return nil, &state{}
	}
	var out []chroma.Token
	tokens, skip := s.tokens, s.skip
	for n > 0 && len(tokens) > 0 {
		value := tokens[0].Value[skip:]
		if len(value) <= n {
			out = append(out, chroma.Token{Type: tokens[0].Type, Value: value})
			n -= len(value)
			tokens, skip = tokens[1:], 0
			continue
		}
		out = append(out, chroma.Token{Type: tokens[0].Type, Value: value[:n]})
		skip += n
		n = 0
	}
	return out, &state{tokens: tokens, skip: skip}
}

// Begin lexes the whole input once with the grammar's lexer. Lines are then
// handed their share of the token stream by TokenizeLine, so constructs that
// span lines are styled as the lexer sees them in the full document.
func (d *Database) Begin(grammar types.GrammarRef, input string) (types.RenderState, error) {
	g := d.asGrammar(grammar)
	if g.plain || input == "" {
		return &state{}, nil
	}

	tokens, err := tokenise(chroma.Coalesce(g.lexer), input)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "%s lexer failed", g.Name())
	}
	return &state{tokens: tokens}, nil
}

// TokenizeLine styles the tokens of prev that cover line with theme. A line
// that does not continue the input given to Begin is lexed on its own and
// leaves the state as it was. The returned spans always concatenate back to
// line.
func (d *Database) TokenizeLine(grammar types.GrammarRef, line string, theme types.Theme, prev types.RenderState) ([]types.StyleSpan, types.RenderState, error) {
	g := d.asGrammar(grammar)
	if g.plain {
		return plainSpans(line), prev, nil
	}
	if line == "" {
		return nil, prev, nil
	}

	st, _ := prev.(*state)
	if tokens, next := st.take(len(line)); joined(tokens) == line {
		return toSpans(tokens, styleOf(theme)), next, nil
	}

	alone, err := tokenise(chroma.Coalesce(g.lexer), line)
	if err != nil {
		return nil, prev, errors.Wrapf(err, errors.ErrInternal, "%s lexer failed", g.Name())
	}
	if !strings.HasPrefix(joined(alone), line) {
		// The lexer dropped or rewrote text; keep the line intact.
		return plainSpans(line), prev, nil
	}
	tokens, _ := (&state{tokens: alone}).take(len(line))
	return toSpans(tokens, styleOf(theme)), prev, nil
}

func tokenise(lexer chroma.Lexer, text string) ([]chroma.Token, error) {
	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil, err
	}
	return it.Tokens(), nil
}

func joined(tokens []chroma.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Value)
	}
	return b.String()
}

func plainSpans(line string) []types.StyleSpan {
	if line == "" {
		return nil
	}
	return []types.StyleSpan{{Text: line}}
}

func toSpans(tokens []chroma.Token, style *chroma.Style) []types.StyleSpan {
	spans := make([]types.StyleSpan, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Value == "" {
			continue
		}
		s := convertEntry(style, tok.Type)
		if n := len(spans); n > 0 && spans[n-1].Style == s {
			spans[n-1].Text += tok.Value
			continue
		}
		spans = append(spans, types.StyleSpan{Style: s, Text: tok.Value})
	}
	return spans
}
