package types

// GrammarRef is an opaque handle into a SyntaxDatabase. It is only valid
// for the database that produced it and is never mutated.
type GrammarRef interface {
	// Name returns the human name of the grammar (e.g. "TOML")
	Name() string
}

// RenderState is the tokenizer's continuation state threaded from one line
// to the next. Its contents are private to the SyntaxDatabase.
type RenderState interface{}

// SyntaxDatabase looks up grammars and tokenizes text line by line
type SyntaxDatabase interface {
	// FindByName returns the grammar whose name or alias equals name exactly
	FindByName(name string) (GrammarRef, bool)

	// FindByExtension returns the grammar registered for a file extension (without the dot)
	FindByExtension(ext string) (GrammarRef, bool)

	// FindByFilename returns the grammar registered for a whole file name such as "Makefile"
	FindByFilename(name string) (GrammarRef, bool)

	// FindByFirstLine inspects a first line (shebang, XML prologue, modeline)
	FindByFirstLine(line string) (GrammarRef, bool)

	// PlainText returns the grammar that performs no tokenization
	PlainText() GrammarRef

	// Begin returns the initial continuation state for rendering input
	// with a grammar. The lines later fed to TokenizeLine are the lines of
	// input, in order.
	Begin(grammar GrammarRef, input string) (RenderState, error)

	// TokenizeLine tokenizes one line starting from state and returns its
	// spans styled with theme, plus the state to use for the next line
	TokenizeLine(grammar GrammarRef, line string, theme Theme, state RenderState) ([]StyleSpan, RenderState, error)
}
