package themes

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/beevik/etree"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/logging"
	"github.com/arthur-debert/highlight/pkg/types"
)

// themeFile is the YAML/TOML description of a custom theme. Entries map
// chroma token type names ("Keyword", "LiteralString", "Background") to
// chroma style entries ("bold #ff0000 bg:#000000").
type themeFile struct {
	ID      string            `yaml:"id" toml:"id"`
	Name    string            `yaml:"name" toml:"name"`
	Author  string            `yaml:"author" toml:"author"`
	Entries map[string]string `yaml:"entries" toml:"entries"`
}

// Collection is a set of custom themes loaded from disk
type Collection struct {
	path   string
	ids    []types.ThemeID
	themes map[types.ThemeID]types.Theme
	files  map[types.ThemeID]string
}

// LoadCustom loads every theme file in the folder at path. A path naming
// a single file loads just that file. Files with other extensions are
// skipped; any unreadable or malformed theme fails the whole load.
func LoadCustom(path string) (*Collection, error) {
	logger := logging.GetLogger("themes.custom")
	defer logging.LogOperationStart(logger, "load custom themes")()

	info, err := os.Stat(path)
	if err != nil {
		return nil, loadError(err, path, "cannot read custom themes")
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, loadError(err, path, "cannot read custom themes folder")
		}
		for _, entry := range entries {
			if entry.IsDir() || !supported(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
	} else {
		if !supported(path) {
			return nil, errors.Newf(errors.ErrThemeLoad,
				"unsupported theme file %s (use .xml, .yaml, .yml or .toml)", path).
				WithLabel("unsupported theme file").
				WithDetail("path", path)
		}
		files = []string{path}
	}

	c := &Collection{
		path:   path,
		themes: make(map[types.ThemeID]types.Theme),
		files:  make(map[types.ThemeID]string),
	}
	for _, file := range files {
		theme, err := loadThemeFile(file)
		if err != nil {
			return nil, err
		}
		if prev, dup := c.files[theme.ID]; dup {
			return nil, errors.Newf(errors.ErrThemeLoad,
				"theme %q is defined by both %s and %s", theme.ID, prev, file).
				WithLabel("duplicate theme").
				WithDetail("path", file).
				WithDetail("theme", string(theme.ID))
		}
		c.ids = append(c.ids, theme.ID)
		c.themes[theme.ID] = theme
		c.files[theme.ID] = file
		logger.Debug().Str("theme", string(theme.ID)).Str("file", file).Msg("Loaded custom theme")
	}

	logger.Info().Str("path", path).Int("themes", len(c.ids)).Msg("Custom themes loaded")
	return c, nil
}

// Path returns the folder or file the collection was loaded from
func (c *Collection) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Len returns the number of themes in the collection
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// IDs returns the theme ids in file name order
func (c *Collection) IDs() []types.ThemeID {
	if c == nil {
		return nil
	}
	return append([]types.ThemeID(nil), c.ids...)
}

// Get returns the theme registered under id
func (c *Collection) Get(id types.ThemeID) (types.Theme, bool) {
	if c == nil {
		return types.Theme{}, false
	}
	theme, ok := c.themes[id]
	return theme, ok
}

// File returns the file a theme was loaded from
func (c *Collection) File(id types.ThemeID) string {
	if c == nil {
		return ""
	}
	return c.files[id]
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml", ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

func loadThemeFile(path string) (types.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Theme{}, loadError(err, path, "cannot read theme file")
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return loadXMLTheme(path, stem, data)
	case ".toml":
		var tf themeFile
		if err := toml.Unmarshal(data, &tf); err != nil {
			return types.Theme{}, loadError(err, path, "malformed TOML theme")
		}
		return buildTheme(path, stem, tf)
	default:
		var tf themeFile
		if err := yaml.Unmarshal(data, &tf); err != nil {
			return types.Theme{}, loadError(err, path, "malformed YAML theme")
		}
		return buildTheme(path, stem, tf)
	}
}

// loadXMLTheme parses a chroma XML style. chroma only accepts a name
// attribute on <style>, so etree first takes off the author attribute and
// fills in a missing name from the file name.
func loadXMLTheme(path, stem string, data []byte) (types.Theme, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return types.Theme{}, loadError(err, path, "malformed XML theme")
	}
	root := doc.Root()
	if root == nil || root.Tag != "style" {
		return types.Theme{}, errors.Newf(errors.ErrThemeLoad,
			"malformed XML theme %s: root element must be <style>", path).
			WithLabel("malformed XML theme").
			WithDetail("path", path)
	}

	author := root.SelectAttrValue("author", "")
	root.RemoveAttr("author")
	if root.SelectAttrValue("name", "") == "" {
		root.CreateAttr("name", stem)
	}

	cleaned, err := doc.WriteToBytes()
	if err != nil {
		return types.Theme{}, loadError(err, path, "malformed XML theme")
	}
	style, err := chroma.NewXMLStyle(bytes.NewReader(cleaned))
	if err != nil {
		return types.Theme{}, loadError(err, path, "malformed XML theme")
	}

	return types.Theme{
		ID:         types.ThemeID(style.Name),
		Name:       style.Name,
		Author:     author,
		Definition: style,
	}, nil
}

func buildTheme(path, stem string, tf themeFile) (types.Theme, error) {
	id := tf.ID
	if id == "" {
		id = stem
	}
	name := tf.Name
	if name == "" {
		name = id
	}

	keys := make([]string, 0, len(tf.Entries))
	for key := range tf.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := chroma.StyleEntries{}
	for _, key := range keys {
		tt, err := chroma.TokenTypeString(key)
		if err != nil {
			return types.Theme{}, errors.Newf(errors.ErrThemeLoad,
				"unknown token type %q in %s", key, path).
				WithLabel("unknown token type").
				WithDetail("path", path).
				WithDetail("token", key)
		}
		entries[tt] = tf.Entries[key]
	}

	style, err := chroma.NewStyle(id, entries)
	if err != nil {
		return types.Theme{}, loadError(err, path, "invalid style entry")
	}
	return types.Theme{
		ID:         types.ThemeID(id),
		Name:       name,
		Author:     tf.Author,
		Definition: style,
	}, nil
}

func loadError(err error, path, msg string) error {
	return errors.Wrapf(err, errors.ErrThemeLoad, "%s %s", msg, path).
		WithLabel(msg).
		WithDetail("path", path)
}
