package types

import "fmt"

// SourceKind identifies which layer supplied a setting
type SourceKind string

const (
	SourceFlag   SourceKind = "flag"
	SourceConfig SourceKind = "config"
	SourceEnv    SourceKind = "env"
)

// Span locates a raw value: the layer it came from, the file (for config
// files) and the key, flag or variable name.
type Span struct {
	Kind SourceKind
	File string
	Key  string
}

// String renders the span for error messages
func (s Span) String() string {
	switch s.Kind {
	case SourceFlag:
		return fmt.Sprintf("flag --%s", s.Key)
	case SourceEnv:
		return fmt.Sprintf("environment variable %s", s.Key)
	default:
		if s.File != "" {
			return fmt.Sprintf("%s: %s", s.File, s.Key)
		}
		return fmt.Sprintf("config field %s", s.Key)
	}
}

// Value is a raw, not yet type-checked setting plus where it came from
type Value struct {
	Raw  interface{}
	Span Span
}

// InvalidText marks an environment value whose bytes are not valid UTF-8
type InvalidText []byte

// Metadata carries optional hints attached to the input by the host
type Metadata struct {
	// ContentType is a MIME type such as "text/x-toml; charset=utf-8"
	ContentType string

	// SourcePath is the path the input was read from
	SourcePath string
}
