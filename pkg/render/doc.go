// Package render turns input text into terminal escape sequences.
//
// Renderer folds over the input line by line, threading the syntax
// database's continuation state, and Encode wraps each styled span in SGR
// sequences produced by termenv.
package render
