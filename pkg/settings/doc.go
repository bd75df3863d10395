// Package settings resolves user-facing settings from competing sources.
//
// Each source is represented as a *types.Value (nil when the source does not
// supply the setting). Resolution walks the sources in precedence order and
// only moves on when a source is absent: a present value that has the wrong
// type, is not valid text, or fails validation stops the walk with an error.
package settings
