package settings

// Environment variable names read by the resolvers
const (
	EnvTheme      = "HIGHLIGHT_THEME"
	EnvTrueColors = "HIGHLIGHT_TRUE_COLORS"
)
