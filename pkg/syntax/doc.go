// Package syntax implements the grammar database on top of chroma.
//
// Grammars are looked up by name or alias, file extension, whole file name
// and first line (shebang, modeline, XML prologue). Begin lexes the whole
// input once; the state carried from line to line is the rest of that token
// stream, and each line takes the tokens that cover it. Constructs spanning
// lines, such as Go block comments or Python triple-quoted strings, keep
// their style on every line.
package syntax
