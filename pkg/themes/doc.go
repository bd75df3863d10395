// Package themes provides the theme stores used by highlight.
//
// Builtin exposes chroma's bundled styles. LoadCustom reads a folder of
// user themes (chroma XML styles, or YAML/TOML descriptions of token
// styles) into a Collection. Catalog layers a Collection over the built-in
// store: an id is valid when either knows it and lookups prefer the custom
// entry.
package themes
