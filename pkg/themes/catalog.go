package themes

import (
	"github.com/arthur-debert/highlight/pkg/types"
)

// Catalog merges the built-in store with an optional custom collection
type Catalog struct {
	builtin types.ThemeStore
	custom  *Collection
}

var _ types.ThemeStore = (*Catalog)(nil)

// NewCatalog layers custom over builtin. custom may be nil.
func NewCatalog(builtin types.ThemeStore, custom *Collection) *Catalog {
	return &Catalog{builtin: builtin, custom: custom}
}

// Has reports whether either store knows id
func (c *Catalog) Has(id types.ThemeID) bool {
	if _, ok := c.custom.Get(id); ok {
		return true
	}
	_, ok := c.builtin.Get(id)
	return ok
}

// Get returns the custom theme for id if there is one, else the built-in
func (c *Catalog) Get(id types.ThemeID) (types.Theme, bool) {
	if theme, ok := c.custom.Get(id); ok {
		return theme, true
	}
	return c.builtin.Get(id)
}

// IDs lists the built-in ids not shadowed by a custom theme, then the
// custom ids. Every id appears once.
func (c *Catalog) IDs() []types.ThemeID {
	builtin := c.builtin.IDs()
	ids := make([]types.ThemeID, 0, len(builtin)+c.custom.Len())
	for _, id := range builtin {
		if _, shadowed := c.custom.Get(id); shadowed {
			continue
		}
		ids = append(ids, id)
	}
	return append(ids, c.custom.IDs()...)
}

// DefaultID returns the built-in store's default
func (c *Catalog) DefaultID() types.ThemeID {
	return c.builtin.DefaultID()
}

// Describe builds the theme listing. The entry matching override is marked
// as default; with no override the store default is marked instead.
func (c *Catalog) Describe(override *types.ThemeID) []types.ThemeDescription {
	def := c.DefaultID()
	if override != nil {
		def = *override
	}

	ids := c.IDs()
	out := make([]types.ThemeDescription, 0, len(ids))
	for _, id := range ids {
		theme, _ := c.Get(id)
		out = append(out, types.ThemeDescription{
			ID:      id,
			Name:    theme.Name,
			Author:  theme.Author,
			Default: id == def,
		})
	}
	return out
}
