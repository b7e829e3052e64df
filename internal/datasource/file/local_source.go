// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct{ path string }

// NewLocal returns a Local data source bound to the provided filesystem path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path reports the path this source reads from.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading and returns an io.ReadCloser.
//
// Behavior:
//   - If the context is already canceled at the time of the call, Open returns
//     the context error immediately without touching the filesystem.
//   - Filesystem errors are wrapped with the path for context while still
//     permitting errors.Is checks by callers, in particular
//     errors.Is(err, os.ErrNotExist) for missing-file detection.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
