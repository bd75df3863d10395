package settings

import "github.com/arthur-debert/highlight/pkg/types"

// ResolvePath type-checks an optional path setting. An absent or empty
// value yields "".
func ResolvePath(setting string, config *types.Value) (string, error) {
	if !present(config) {
		return "", nil
	}
	return stringValue(setting, config)
}
