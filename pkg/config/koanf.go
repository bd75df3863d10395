package config

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/logging"
	"github.com/arthur-debert/highlight/pkg/settings"
	"github.com/arthur-debert/highlight/pkg/types"
)

// Configuration keys
const (
	KeyTheme        = "theme"
	KeyTrueColors   = "true_colors"
	KeyCustomThemes = "custom_themes"
)

// EnvPrefix selects the environment variables captured at load time
const EnvPrefix = "HIGHLIGHT_"

// userConfigNames are searched, in order, under the XDG config directories
var userConfigNames = []string{
	"highlight/config.toml",
	"highlight/config.yaml",
	"highlight/config.yml",
}

// Options controls which layers Load reads
type Options struct {
	// ConfigPath is an explicit configuration file merged last
	ConfigPath string

	// SkipUserConfig leaves out the XDG user configuration
	SkipUserConfig bool

	// SkipEnv leaves the environment layer empty
	SkipEnv bool
}

// Sources is the merged configuration plus the separate environment layer
type Sources struct {
	config *koanf.Koanf
	env    *koanf.Koanf

	// origins maps a configuration key to the file that last set it.
	// Keys set by the embedded defaults map to "".
	origins map[string]string
}

// Load reads the embedded defaults, the user's configuration file, the
// explicit configuration file and the HIGHLIGHT_* environment variables.
func Load(opts Options) (*Sources, error) {
	logger := logging.GetLogger("config")
	defer logging.LogOperationStart(logger, "load configuration")()

	s := &Sources{
		config:  koanf.New("."),
		env:     koanf.New("."),
		origins: make(map[string]string),
	}

	// 1. Embedded defaults
	if err := s.merge("", &rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	if !opts.SkipUserConfig {
		if path := findUserConfig(); path != "" {
			logger.Debug().Str("path", path).Msg("Loading user config")
			if err := s.loadFile(path); err != nil {
				return nil, err
			}
		}
	}

	// 3. Explicit config
	if opts.ConfigPath != "" {
		if _, err := os.Stat(opts.ConfigPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"cannot read config file %s", opts.ConfigPath).
				WithDetail("path", opts.ConfigPath)
		}
		logger.Debug().Str("path", opts.ConfigPath).Msg("Loading explicit config")
		if err := s.loadFile(opts.ConfigPath); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	if !opts.SkipEnv {
		if err := s.env.Load(env.ProviderWithValue(EnvPrefix, "", captureEnv), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read environment")
		}
	}

	logger.Debug().
		Strs("keys", s.config.Keys()).
		Strs("env", s.env.Keys()).
		Msg("Configuration loaded")
	return s, nil
}

// FromMap builds Sources from in-memory maps. config uses the same keys as
// the configuration files; environment maps variable names to values.
func FromMap(config map[string]interface{}, environment map[string]string) (*Sources, error) {
	s := &Sources{
		config:  koanf.New("."),
		env:     koanf.New("."),
		origins: make(map[string]string),
	}
	if config != nil {
		if err := s.merge("", confmap.Provider(config, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load configuration map")
		}
	}
	if len(environment) > 0 {
		vars := make(map[string]interface{}, len(environment))
		for name, value := range environment {
			if key, v := captureEnv(name, value); key != "" {
				vars[key] = v
			}
		}
		if err := s.env.Load(confmap.Provider(vars, ""), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load environment map")
		}
	}
	return s, nil
}

// Lookup returns the configuration value for key, or false when no
// configuration layer sets it.
func (s *Sources) Lookup(key string) (*types.Value, bool) {
	if s == nil || !s.config.Exists(key) {
		return nil, false
	}
	return &types.Value{
		Raw: s.config.Get(key),
		Span: types.Span{
			Kind: types.SourceConfig,
			File: s.origins[key],
			Key:  key,
		},
	}, true
}

// Env returns the value of an environment variable captured at load time.
// Values that are not valid UTF-8 come back as types.InvalidText.
func (s *Sources) Env(name string) (*types.Value, bool) {
	if s == nil || !s.env.Exists(name) {
		return nil, false
	}
	raw := s.env.Get(name)
	if str, ok := raw.(string); ok && !utf8.ValidString(str) {
		raw = types.InvalidText(str)
	}
	return &types.Value{
		Raw:  raw,
		Span: types.Span{Kind: types.SourceEnv, Key: name},
	}, true
}

// CustomThemesPath returns the custom themes path with "~" expanded.
// Relative paths are taken from the directory of the file that set them.
func (s *Sources) CustomThemesPath() string {
	if s == nil {
		return ""
	}
	path := s.config.String(KeyCustomThemes)
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) {
		if origin := s.origins[KeyCustomThemes]; origin != "" {
			path = filepath.Join(filepath.Dir(origin), path)
		}
	}
	return path
}

// Keys lists every key set by a configuration layer
func (s *Sources) Keys() []string {
	if s == nil {
		return nil
	}
	return s.config.Keys()
}

// merge loads one layer on its own, records which keys it set, then merges
// it over the layers loaded before it.
func (s *Sources) merge(origin string, p koanf.Provider, parser koanf.Parser) error {
	layer := koanf.New(".")
	if err := layer.Load(p, parser); err != nil {
		return err
	}
	for _, key := range layer.Keys() {
		s.origins[key] = origin
	}
	return s.config.Merge(layer)
}

func (s *Sources) loadFile(path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return err
	}
	if err := s.merge(path, file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad,
			"unsupported config format %q (use .toml, .yaml or .yml)", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

func findUserConfig() string {
	for _, name := range userConfigNames {
		if path, err := xdg.SearchConfigFile(name); err == nil {
			return path
		}
	}
	return ""
}

// captureEnv keeps only the variables highlight reads
func captureEnv(key, value string) (string, interface{}) {
	switch key {
	case settings.EnvTheme, settings.EnvTrueColors:
		return key, value
	default:
		return "", nil
	}
}
