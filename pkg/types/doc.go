// Package types defines the core types and interfaces shared by the
// resolution and rendering packages. This includes the SyntaxDatabase and
// ThemeStore collaborators, the style spans they produce, and the Value and
// Span types used to carry raw settings together with where they came from.
package types
