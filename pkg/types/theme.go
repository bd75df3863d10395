package types

// ThemeID is the key of a theme in the built-in store or a custom collection
type ThemeID string

// Theme is a named mapping from token categories to display styles.
// Concrete themes are produced by ThemeStore implementations; the
// SyntaxDatabase that understands them type-asserts Definition.
type Theme struct {
	ID     ThemeID
	Name   string
	Author string

	// Definition is the store specific theme payload
	Definition interface{}
}

// ThemeStore is a read-only source of themes
type ThemeStore interface {
	// IDs returns the theme ids in listing order
	IDs() []ThemeID

	// Get returns the theme for id
	Get(id ThemeID) (Theme, bool)

	// DefaultID returns the id used when no override is given
	DefaultID() ThemeID
}

// ThemeDescription is one row of a theme listing
type ThemeDescription struct {
	ID      ThemeID `json:"id"`
	Name    string  `json:"name"`
	Author  string  `json:"author"`
	Default bool    `json:"default"`
}
