// Package typestest provides in-memory fakes of the types interfaces for
// tests.
package typestest

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/highlight/pkg/types"
)

// Grammar is a named GrammarRef
type Grammar struct {
	GrammarName string
}

// Name returns the grammar name
func (g *Grammar) Name() string { return g.GrammarName }

// TokenizeCall records one TokenizeLine invocation
type TokenizeCall struct {
	Grammar types.GrammarRef
	Line    string
	Theme   types.ThemeID
	State   types.RenderState
}

// SyntaxDB is a SyntaxDatabase backed by lookup tables. Its tokenizer
// returns each line as one span and counts lines in the state, so tests can
// observe that state is threaded from one call to the next.
type SyntaxDB struct {
	Names      map[string]*Grammar
	Extensions map[string]*Grammar
	Filenames  map[string]*Grammar
	FirstLines map[string]*Grammar
	Plain      *Grammar

	// Style is applied to every span
	Style types.Style

	// FailOn makes TokenizeLine fail for this exact line
	FailOn string

	// FailBegin makes Begin fail
	FailBegin bool

	mu      sync.Mutex
	lookups []string
	inputs  []string
	calls   []TokenizeCall
}

var _ types.SyntaxDatabase = (*SyntaxDB)(nil)

// NewSyntaxDB returns an empty database with a "Plain Text" fallback
func NewSyntaxDB() *SyntaxDB {
	return &SyntaxDB{
		Names:      map[string]*Grammar{},
		Extensions: map[string]*Grammar{},
		Filenames:  map[string]*Grammar{},
		FirstLines: map[string]*Grammar{},
		Plain:      &Grammar{GrammarName: "Plain Text"},
	}
}

// AddGrammar registers a grammar under a name and optional extensions
func (d *SyntaxDB) AddGrammar(name string, extensions ...string) *Grammar {
	g := &Grammar{GrammarName: name}
	d.Names[name] = g
	for _, ext := range extensions {
		d.Extensions[ext] = g
	}
	return g
}

// Lookups returns the lookups made so far as "kind:query"
func (d *SyntaxDB) Lookups() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.lookups...)
}

// Inputs returns the inputs passed to Begin so far
func (d *SyntaxDB) Inputs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.inputs...)
}

// Calls returns the TokenizeLine invocations made so far
func (d *SyntaxDB) Calls() []TokenizeCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]TokenizeCall(nil), d.calls...)
}

func (d *SyntaxDB) record(kind, query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups = append(d.lookups, kind+":"+query)
}

func (d *SyntaxDB) FindByName(name string) (types.GrammarRef, bool) {
	d.record("name", name)
	return found(d.Names[name])
}

func (d *SyntaxDB) FindByExtension(ext string) (types.GrammarRef, bool) {
	d.record("ext", ext)
	return found(d.Extensions[ext])
}

func (d *SyntaxDB) FindByFilename(name string) (types.GrammarRef, bool) {
	d.record("filename", name)
	return found(d.Filenames[name])
}

func (d *SyntaxDB) FindByFirstLine(line string) (types.GrammarRef, bool) {
	d.record("firstline", line)
	return found(d.FirstLines[line])
}

func (d *SyntaxDB) PlainText() types.GrammarRef { return d.Plain }

func (d *SyntaxDB) Begin(grammar types.GrammarRef, input string) (types.RenderState, error) {
	d.mu.Lock()
	d.inputs = append(d.inputs, input)
	d.mu.Unlock()

	if d.FailBegin {
		return nil, fmt.Errorf("begin failed for %s", grammar.Name())
	}
	return 0, nil
}

func (d *SyntaxDB) TokenizeLine(grammar types.GrammarRef, line string, theme types.Theme, state types.RenderState) ([]types.StyleSpan, types.RenderState, error) {
	d.mu.Lock()
	d.calls = append(d.calls, TokenizeCall{Grammar: grammar, Line: line, Theme: theme.ID, State: state})
	d.mu.Unlock()

	if d.FailOn != "" && line == d.FailOn {
		return nil, state, fmt.Errorf("tokenize failed on %q", line)
	}
	n, _ := state.(int)
	return []types.StyleSpan{{Style: d.Style, Text: line}}, n + 1, nil
}

func found(g *Grammar) (types.GrammarRef, bool) {
	if g == nil {
		return nil, false
	}
	return g, true
}
