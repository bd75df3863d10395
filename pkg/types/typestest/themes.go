package typestest

import "github.com/arthur-debert/highlight/pkg/types"

// ThemeStore is an in-memory ThemeStore
type ThemeStore struct {
	Order   []types.ThemeID
	Themes  map[types.ThemeID]types.Theme
	Default types.ThemeID
}

var _ types.ThemeStore = (*ThemeStore)(nil)

// NewThemeStore returns a store holding ids in order; the first is the default
func NewThemeStore(ids ...types.ThemeID) *ThemeStore {
	s := &ThemeStore{Themes: map[types.ThemeID]types.Theme{}}
	for _, id := range ids {
		s.Order = append(s.Order, id)
		s.Themes[id] = types.Theme{ID: id, Name: string(id)}
	}
	if len(ids) > 0 {
		s.Default = ids[0]
	}
	return s
}

func (s *ThemeStore) IDs() []types.ThemeID {
	return append([]types.ThemeID(nil), s.Order...)
}

func (s *ThemeStore) Get(id types.ThemeID) (types.Theme, bool) {
	t, ok := s.Themes[id]
	return t, ok
}

func (s *ThemeStore) DefaultID() types.ThemeID { return s.Default }
