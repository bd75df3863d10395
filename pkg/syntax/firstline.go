package syntax

import (
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/arthur-debert/highlight/pkg/logging"
	"github.com/arthur-debert/highlight/pkg/types"
)

// enryToChromaMap maps go-enry language names to chroma lexer aliases where
// lowercasing the enry name is not enough.
var enryToChromaMap = map[string]string{
	"Shell":           "bash",
	"Vim Script":      "vim",
	"Emacs Lisp":      "emacs",
	"Protocol Buffer": "protobuf",
	"Batchfile":       "batch",
	"Common Lisp":     "common-lisp",
	"Objective-C":     "objective-c",
	"Graphviz (DOT)":  "dot",
}

// FindByFirstLine detects a grammar from the first line of the input.
// Shebangs and editor modelines are read with go-enry; an XML prologue
// selects XML; anything else goes through the lexers' own analysers.
func (d *Database) FindByFirstLine(line string) (types.GrammarRef, bool) {
	logger := logging.GetLogger("syntax.firstline")

	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil, false
	}
	content := []byte(line + "\n")

	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		if g, ok := d.fromEnry(lang); ok {
			logger.Debug().Str("language", lang).Msg("Matched shebang")
			return g, true
		}
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe && lang != "" {
		if g, ok := d.fromEnry(lang); ok {
			logger.Debug().Str("language", lang).Msg("Matched modeline")
			return g, true
		}
	}
	if strings.HasPrefix(strings.TrimLeft(line, "\uFEFF \t"), "<?xml") {
		if g, ok := d.FindByName("XML"); ok {
			logger.Debug().Msg("Matched XML prologue")
			return g, true
		}
	}
	if lexer := d.registry.Analyse(line); lexer != nil {
		logger.Debug().Str("language", lexer.Config().Name).Msg("Matched lexer analyser")
		return d.found(lexer)
	}
	return nil, false
}

func (d *Database) fromEnry(lang string) (types.GrammarRef, bool) {
	if alias, ok := enryToChromaMap[lang]; ok {
		if g, ok := d.FindByName(alias); ok {
			return g, true
		}
	}
	if g, ok := d.FindByName(lang); ok {
		return g, true
	}
	return d.FindByName(strings.ToLower(lang))
}
