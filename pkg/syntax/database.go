package syntax

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/arthur-debert/highlight/pkg/logging"
	"github.com/arthur-debert/highlight/pkg/types"
)

// plainTextName is the name of chroma's explicit plain text lexer
const plainTextName = "plaintext"

// Grammar is a types.GrammarRef backed by a chroma lexer
type Grammar struct {
	lexer chroma.Lexer
	plain bool
}

// Name returns the lexer name (e.g. "TOML")
func (g *Grammar) Name() string {
	if g.plain {
		return plainTextName
	}
	return g.lexer.Config().Name
}

// Aliases returns the short names the lexer is also known by
func (g *Grammar) Aliases() []string {
	if g.lexer == nil {
		return nil
	}
	return g.lexer.Config().Aliases
}

// Lexer exposes the underlying chroma lexer
func (g *Grammar) Lexer() chroma.Lexer {
	return g.lexer
}

// Option configures a Database
type Option func(*Database)

// WithRegistry replaces chroma's global lexer registry
func WithRegistry(reg *chroma.LexerRegistry) Option {
	return func(d *Database) {
		if reg != nil {
			d.registry = reg
		}
	}
}

// Database implements types.SyntaxDatabase over a chroma lexer registry.
// It is safe for concurrent use.
type Database struct {
	registry *chroma.LexerRegistry
	plain    *Grammar

	mu       sync.RWMutex
	grammars map[chroma.Lexer]*Grammar
}

var _ types.SyntaxDatabase = (*Database)(nil)

// New returns a Database over chroma's bundled lexers
func New(opts ...Option) *Database {
	d := &Database{
		registry: lexers.GlobalLexerRegistry,
		grammars: make(map[chroma.Lexer]*Grammar),
	}
	for _, opt := range opts {
		opt(d)
	}

	plain := d.lookupName(plainTextName)
	if plain == nil {
		plain = lexers.Fallback
	}
	d.plain = &Grammar{lexer: plain, plain: true}
	d.grammars[plain] = d.plain

	logger := logging.GetLogger("syntax")
	logger.Debug().Int("lexers", len(d.registry.Lexers)).Msg("Syntax database ready")
	return d
}

// Grammars returns every grammar in the registry, sorted by name
func (d *Database) Grammars() []*Grammar {
	out := make([]*Grammar, 0, len(d.registry.Lexers))
	for _, lexer := range d.registry.Lexers {
		out = append(out, d.grammar(lexer))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// FindByName matches a lexer name or alias exactly
func (d *Database) FindByName(name string) (types.GrammarRef, bool) {
	if name == "" {
		return nil, false
	}
	return d.found(d.lookupName(name))
}

// FindByExtension matches "file.<ext>" against each lexer's primary file
// name patterns. Ties are broken by lexer priority.
func (d *Database) FindByExtension(ext string) (types.GrammarRef, bool) {
	if ext == "" {
		return nil, false
	}
	filename := "file." + ext

	var candidates chroma.PrioritisedLexers
	for _, lexer := range d.registry.Lexers {
		for _, glob := range lexer.Config().Filenames {
			if ok, _ := filepath.Match(glob, filename); ok {
				candidates = append(candidates, lexer)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Stable(candidates)
	return d.found(candidates[0])
}

// FindByFilename matches a whole file name such as "Makefile" or "go.mod"
func (d *Database) FindByFilename(name string) (types.GrammarRef, bool) {
	if name == "" {
		return nil, false
	}
	return d.found(d.registry.Match(filepath.Base(name)))
}

// PlainText returns the grammar that emits every line as one unstyled span
func (d *Database) PlainText() types.GrammarRef {
	return d.plain
}

func (d *Database) lookupName(name string) chroma.Lexer {
	for _, lexer := range d.registry.Lexers {
		config := lexer.Config()
		if config.Name == name {
			return lexer
		}
		for _, alias := range config.Aliases {
			if alias == name {
				return lexer
			}
		}
	}
	return nil
}

func (d *Database) found(lexer chroma.Lexer) (types.GrammarRef, bool) {
	if lexer == nil {
		return nil, false
	}
	return d.grammar(lexer), true
}

// grammar returns the single Grammar wrapping lexer, so that lookups for the
// same lexer compare equal.
func (d *Database) grammar(lexer chroma.Lexer) *Grammar {
	d.mu.RLock()
	g, ok := d.grammars[lexer]
	d.mu.RUnlock()
	if ok {
		return g
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if g, ok := d.grammars[lexer]; ok {
		return g
	}
	g = &Grammar{lexer: lexer, plain: lexer.Config().Name == plainTextName}
	d.grammars[lexer] = g
	return g
}

// asGrammar unwraps a GrammarRef produced by this package
func (d *Database) asGrammar(ref types.GrammarRef) *Grammar {
	if g, ok := ref.(*Grammar); ok && g != nil {
		return g
	}
	return d.plain
}
