// Package marker locates matched bracket pairs in raw template text. It
// honors backslash escapes (a token preceded by an odd number of backslashes
// is literal text) and arbitrary nesting. The same locator serves both the
// `${`/`}` control delimiters and the `(`/`)` argument-list delimiters.
package marker
