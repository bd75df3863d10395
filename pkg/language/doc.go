// Package language picks the grammar used to highlight an input.
//
// The resolver walks a fixed cascade: the explicit language hint, the MIME
// subtype of the attached content type, the extension or name of the
// source file, the first line of the input, and finally plain text. It
// never fails; a source that does not match simply hands over to the next.
package language
