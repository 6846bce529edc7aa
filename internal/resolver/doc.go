// Package resolver maps control-source names to the functions that resolve
// them. A resolver sees a control whose arguments and path have already been
// reduced to plain strings, consults the resolution context, and either
// produces a replacement string, reports that it cannot resolve yet (the
// reducer will retry on a later pass), or fails hard.
package resolver
