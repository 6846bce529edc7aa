// Package fsutil provides file system utility functions.
package fsutil

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/preconfig/internal/errs"
)

// ReadTextFile reads the file at path and returns its contents as a string.
// A missing file is reported as a reference error so resolution failures
// surface with the path that was asked for. Cancellation is honored before
// the read starts.
func ReadTextFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.Referencef("file not found: %s", path)
		}
		return "", err
	}
	return string(data), nil
}

// Abs resolves ref against base unless ref is already absolute.
func Abs(base, ref string) string {
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(base, ref)
}
