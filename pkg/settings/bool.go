package settings

import (
	"strings"

	"github.com/arthur-debert/highlight/pkg/cascade"
	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/types"
)

// ResolveBool resolves a boolean setting from the configuration, then the
// environment, then def.
func ResolveBool(setting string, config, env *types.Value, def bool) (bool, error) {
	return cascade.FirstOr(def,
		configBool(setting, config),
		envBool(setting, env),
	)
}

// ParseBoolToken parses an environment token. Tokens are trimmed and
// compared case-insensitively; the empty token counts as true.
func ParseBoolToken(token string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "true", "yes", "1", "":
		return true, true
	case "false", "no", "0":
		return false, true
	default:
		return false, false
	}
}

func configBool(setting string, v *types.Value) cascade.Lookup[bool] {
	return func() (bool, bool, error) {
		if !present(v) {
			return false, false, nil
		}
		b, ok := v.Raw.(bool)
		if !ok {
			return false, false, typeMismatch(setting, "bool", v)
		}
		return b, true, nil
	}
}

func envBool(setting string, v *types.Value) cascade.Lookup[bool] {
	return func() (bool, bool, error) {
		if !present(v) {
			return false, false, nil
		}
		s, err := stringValue(setting, v)
		if err != nil {
			return false, false, err
		}
		b, ok := ParseBoolToken(s)
		if !ok {
			return false, false, errors.Newf(errors.ErrUnparsableSetting,
				"cannot parse %q from %s as a boolean", s, v.Span).
				WithLabel("expected true, yes, 1, false, no or 0").
				WithLocation(v.Span).
				WithDetail("value", s).
				WithDetail("variable", v.Span.Key)
		}
		return b, true, nil
	}
}
