package highlight

import (
	"bytes"
	"time"
	"unicode/utf8"

	"github.com/arthur-debert/highlight/pkg/config"
	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/language"
	"github.com/arthur-debert/highlight/pkg/logging"
	"github.com/arthur-debert/highlight/pkg/render"
	"github.com/arthur-debert/highlight/pkg/settings"
	"github.com/arthur-debert/highlight/pkg/themes"
	"github.com/arthur-debert/highlight/pkg/types"
)

// Request is one invocation
type Request struct {
	// Hint is the positional language argument; "" means none
	Hint string

	// ThemeFlag is the --theme value, nil when the flag was not given
	ThemeFlag *types.Value

	// ListThemes asks for the theme listing instead of rendering
	ListThemes bool

	// Input must be a string or UTF-8 encoded []byte
	Input interface{}

	// Sources supplies the configuration and environment layers
	Sources *config.Sources

	// Metadata is what the host knows about where the input came from
	Metadata types.Metadata
}

// ResolvedConfig is the configuration assembled for one invocation
type ResolvedConfig struct {
	Theme           *types.ThemeID
	TrueColors      bool
	CustomThemePath string
}

// Result is either the rendered text or the theme listing
type Result struct {
	Rendered string
	Themes   []types.ThemeDescription

	// Config is the configuration the invocation ran with
	Config ResolvedConfig

	// Grammar and Theme name what the input was rendered with
	Grammar string
	Theme   types.ThemeID
}

// Highlighter holds the shared, read-only collaborators
type Highlighter struct {
	db       types.SyntaxDatabase
	builtin  types.ThemeStore
	resolver *language.Resolver
	renderer *render.Renderer
}

// New returns a Highlighter over a syntax database and built-in theme store
func New(db types.SyntaxDatabase, builtin types.ThemeStore) *Highlighter {
	return &Highlighter{
		db:       db,
		builtin:  builtin,
		resolver: language.NewResolver(db),
		renderer: render.NewRenderer(db),
	}
}

// Run executes req
func (h *Highlighter) Run(req Request) (*Result, error) {
	logger := logging.GetLogger("highlight")
	start := time.Now()

	resolved, catalog, err := h.resolveConfig(req)
	if err != nil {
		return nil, err
	}

	if req.ListThemes {
		list := catalog.Describe(resolved.Theme)
		logger.Debug().Int("themes", len(list)).Msg("Listing themes")
		return &Result{Themes: list, Config: resolved}, nil
	}

	text, err := inputText(req.Input)
	if err != nil {
		return nil, err
	}

	grammar := h.resolver.Resolve(req.Hint, text, req.Metadata)

	themeID := catalog.DefaultID()
	if resolved.Theme != nil {
		themeID = *resolved.Theme
	}
	theme, ok := catalog.Get(themeID)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownTheme, "default theme %q is not available", themeID).
			WithLabel("unknown theme").
			WithDetail("theme", string(themeID))
	}

	rendered, err := h.renderer.Highlight(text, grammar, theme, resolved.TrueColors)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("grammar", grammar.Name()).
		Str("theme", string(themeID)).
		Bool("true_colors", resolved.TrueColors).
		Int("bytes", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Highlighted input")

	return &Result{
		Rendered: rendered,
		Config:   resolved,
		Grammar:  grammar.Name(),
		Theme:    themeID,
	}, nil
}

// resolveConfig loads custom themes and resolves the theme override and the
// true colors switch.
func (h *Highlighter) resolveConfig(req Request) (ResolvedConfig, *themes.Catalog, error) {
	var resolved ResolvedConfig
	src := req.Sources

	cfgPath, _ := src.Lookup(config.KeyCustomThemes)
	path, err := settings.ResolvePath(config.KeyCustomThemes, cfgPath)
	if err != nil {
		return resolved, nil, err
	}

	var custom *themes.Collection
	if path != "" {
		resolved.CustomThemePath = src.CustomThemesPath()
		custom, err = themes.LoadCustom(resolved.CustomThemePath)
		if err != nil {
			if e, ok := err.(*errors.Error); ok && cfgPath != nil {
				e.WithLocation(cfgPath.Span)
			}
			return resolved, nil, err
		}
	}
	catalog := themes.NewCatalog(h.builtin, custom)

	cfgTheme, _ := src.Lookup(config.KeyTheme)
	envTheme, _ := src.Env(settings.EnvTheme)
	resolved.Theme, err = settings.ResolveTheme(req.ThemeFlag, cfgTheme, envTheme, catalog.Has)
	if err != nil {
		return resolved, nil, err
	}

	cfgTrue, _ := src.Lookup(config.KeyTrueColors)
	envTrue, _ := src.Env(settings.EnvTrueColors)
	resolved.TrueColors, err = settings.ResolveBool(config.KeyTrueColors, cfgTrue, envTrue, true)
	if err != nil {
		return resolved, nil, err
	}

	return resolved, catalog, nil
}

// inputText accepts text input only
func inputText(input interface{}) (string, error) {
	switch v := input.(type) {
	case string:
		return v, nil
	case []byte:
		if !utf8.Valid(v) || bytes.IndexByte(v, 0) >= 0 {
			return "", errors.New(errors.ErrInputType, "input is binary data, not text").
				WithLabel("expected text input")
		}
		return string(v), nil
	case nil:
		return "", errors.New(errors.ErrInputType, "no input was given").
			WithLabel("expected text input")
	default:
		return "", errors.Newf(errors.ErrInputType, "input must be text, got %T", input).
			WithLabel("expected text input")
	}
}
