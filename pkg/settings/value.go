package settings

import (
	"fmt"
	"unicode/utf8"

	"github.com/arthur-debert/highlight/pkg/errors"
	"github.com/arthur-debert/highlight/pkg/types"
)

// present reports whether a source supplied a value
func present(v *types.Value) bool {
	return v != nil && v.Raw != nil
}

// stringValue type-checks v as text
func stringValue(setting string, v *types.Value) (string, error) {
	switch raw := v.Raw.(type) {
	case string:
		if !utf8.ValidString(raw) {
			return "", encodingError(setting, v)
		}
		return raw, nil
	case types.InvalidText:
		return "", encodingError(setting, v)
	default:
		return "", typeMismatch(setting, "string", v)
	}
}

func typeMismatch(setting, want string, v *types.Value) error {
	return errors.Newf(errors.ErrTypeMismatch,
		"%s from %s must be a %s, got %s", setting, v.Span.Kind, want, typeName(v.Raw)).
		WithLabel(fmt.Sprintf("expected %s", want)).
		WithLocation(v.Span).
		WithDetail("level", string(v.Span.Kind))
}

func encodingError(setting string, v *types.Value) error {
	return errors.Newf(errors.ErrEncoding,
		"%s from %s is not valid UTF-8 text", setting, v.Span).
		WithLabel("not valid text").
		WithLocation(v.Span).
		WithDetail("variable", v.Span.Key)
}

func typeName(raw interface{}) string {
	switch raw.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	case []interface{}:
		return "list"
	case map[string]interface{}:
		return "record"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
