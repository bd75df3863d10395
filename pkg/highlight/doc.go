// Package highlight runs one highlight invocation end to end.
//
// A Request carries the host's inputs: the optional language hint, the
// theme flag, the list-themes switch, the input value, the configuration
// and environment sources and the attached metadata. Run assembles the
// ResolvedConfig, loads custom themes, and either lists the themes or
// renders the input.
package highlight
