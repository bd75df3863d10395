// Package config loads the layered settings highlight reads at startup.
// Configuration files (embedded defaults, the user's XDG config and an
// explicit --config path) merge into one view, while the HIGHLIGHT_*
// environment variables are kept apart so the resolvers can rank them
// below configuration.
package config
