package settings

import (
	"github.com/arthur-debert/highlight/pkg/cascade"
	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/logging"
	"github.com/arthur-debert/highlight/pkg/types"
)

// ResolveTheme picks the theme override from an explicit flag, the
// configuration and the environment, in that order. It returns nil when no
// source supplies a theme; the caller then uses the store's default.
func ResolveTheme(flag, config, env *types.Value, isValid func(types.ThemeID) bool) (*types.ThemeID, error) {
	logger := logging.GetLogger("settings.theme")

	id, found, err := cascade.First(
		themeLookup(flag, isValid),
		themeLookup(config, isValid),
		themeLookup(env, isValid),
	)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Debug().Msg("No theme override supplied")
		return nil, nil
	}

	logger.Debug().Str("theme", string(id)).Msg("Theme override resolved")
	return &id, nil
}

func themeLookup(v *types.Value, isValid func(types.ThemeID) bool) cascade.Lookup[types.ThemeID] {
	return func() (types.ThemeID, bool, error) {
		if !present(v) {
			return "", false, nil
		}
		s, err := stringValue("theme", v)
		if err != nil {
			return "", false, err
		}
		id := types.ThemeID(s)
		if !isValid(id) {
			return "", false, errors.Newf(errors.ErrUnknownTheme, "unknown theme %q", s).
				WithLabel("unknown theme").
				WithLocation(v.Span).
				WithDetail("theme", s)
		}
		logger := logging.GetLogger("settings.theme")
		logger.Trace().
			Str("level", string(v.Span.Kind)).
			Str("theme", s).
			Msg("Theme source accepted")
		return id, true, nil
	}
}
