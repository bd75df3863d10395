package language

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/highlight/pkg/cascade"
	"github.com/arthur-debert/highlight/pkg/logging"
	"github.com/arthur-debert/highlight/pkg/types"
)

// Source names the cascade step that selected a grammar
type Source string

const (
	SourceHint      Source = "hint"
	SourceMIME      Source = "mime"
	SourcePath      Source = "path"
	SourceFirstLine Source = "first-line"
	SourceFallback  Source = "fallback"
)

type match struct {
	grammar types.GrammarRef
	source  Source
}

// Resolver selects grammars from a SyntaxDatabase
type Resolver struct {
	db types.SyntaxDatabase
}

// NewResolver returns a resolver over db
func NewResolver(db types.SyntaxDatabase) *Resolver {
	return &Resolver{db: db}
}

// Resolve returns the grammar for input. An empty hint counts as no hint.
func (r *Resolver) Resolve(hint, input string, meta types.Metadata) types.GrammarRef {
	g, _ := r.ResolveWithSource(hint, input, meta)
	return g
}

// ResolveWithSource is Resolve that also reports which step matched
func (r *Resolver) ResolveWithSource(hint, input string, meta types.Metadata) (types.GrammarRef, Source) {
	logger := logging.GetLogger("language")

	m, found, _ := cascade.First(
		r.step(SourceHint, func() (types.GrammarRef, bool) { return r.byHint(hint) }),
		r.step(SourceMIME, func() (types.GrammarRef, bool) { return r.byContentType(meta.ContentType) }),
		r.step(SourcePath, func() (types.GrammarRef, bool) { return r.byPath(meta.SourcePath) }),
		r.step(SourceFirstLine, func() (types.GrammarRef, bool) { return r.byFirstLine(input) }),
	)
	if !found {
		m = match{grammar: r.db.PlainText(), source: SourceFallback}
	}

	logger.Debug().
		Str("hint", hint).
		Str("content_type", meta.ContentType).
		Str("source_path", meta.SourcePath).
		Str("grammar", m.grammar.Name()).
		Str("matched_by", string(m.source)).
		Msg("Language resolved")
	return m.grammar, m.source
}

func (r *Resolver) step(source Source, fn func() (types.GrammarRef, bool)) cascade.Lookup[match] {
	return cascade.Found(func() (match, bool) {
		g, ok := fn()
		if !ok || g == nil {
			return match{}, false
		}
		return match{grammar: g, source: source}, true
	})
}

// byHint tries the hint and its case variants first as names, then as
// extensions.
func (r *Resolver) byHint(hint string) (types.GrammarRef, bool) {
	if hint == "" {
		return nil, false
	}
	candidates := variants(hint)
	for _, v := range candidates {
		if g, ok := r.db.FindByName(v); ok {
			return g, true
		}
	}
	for _, v := range candidates {
		if g, ok := r.db.FindByExtension(v); ok {
			return g, true
		}
	}
	return nil, false
}

func (r *Resolver) byContentType(contentType string) (types.GrammarRef, bool) {
	hint, ok := subtypeHint(contentType)
	if !ok {
		return nil, false
	}
	return r.byHint(hint)
}

func (r *Resolver) byPath(path string) (types.GrammarRef, bool) {
	if path == "" {
		return nil, false
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		if g, ok := r.db.FindByExtension(ext); ok {
			return g, true
		}
	}
	return r.db.FindByFilename(filepath.Base(path))
}

func (r *Resolver) byFirstLine(input string) (types.GrammarRef, bool) {
	line, _, _ := strings.Cut(input, "\n")
	if strings.TrimSpace(line) == "" {
		return nil, false
	}
	return r.db.FindByFirstLine(line)
}

// variants returns s as given, lowercased and with its first rune
// upper-cased, without duplicates.
func variants(s string) []string {
	out := make([]string, 0, 3)
	seen := make(map[string]bool, 3)
	for _, v := range []string{s, strings.ToLower(s), capitalize(s)} {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
