package themes

import (
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/arthur-debert/highlight/pkg/types"
)

// DefaultID is the theme used when no override is given
const DefaultID types.ThemeID = "monokai"

// Builtin is the read-only store of chroma's bundled styles
type Builtin struct {
	defaultID types.ThemeID
}

var _ types.ThemeStore = (*Builtin)(nil)

// NewBuiltin returns the built-in store with DefaultID as its default
func NewBuiltin() *Builtin {
	return &Builtin{defaultID: DefaultID}
}

// IDs returns the style names sorted alphabetically
func (b *Builtin) IDs() []types.ThemeID {
	names := styles.Names()
	ids := make([]types.ThemeID, len(names))
	for i, name := range names {
		ids[i] = types.ThemeID(name)
	}
	return ids
}

// Get returns the bundled style registered under id
func (b *Builtin) Get(id types.ThemeID) (types.Theme, bool) {
	style, ok := styles.Registry[string(id)]
	if !ok {
		return types.Theme{}, false
	}
	return types.Theme{
		ID:         id,
		Name:       style.Name,
		Definition: style,
	}, true
}

// DefaultID returns the default theme id
func (b *Builtin) DefaultID() types.ThemeID {
	return b.defaultID
}
