// Package app wires the transpiler together: it reads the template from a
// file or stdin, resolves it with the supplied parameters, re-formats the
// result, and writes it out. The CLI package translates flags into a Config;
// everything below that line lives here.
package app
