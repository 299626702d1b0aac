// Package upload stores avatar bytes and hands back an opaque reference. The
// rest of the application only ever persists and serves that reference.
package upload

import (
	"context"
	"io"
)

// Store writes a file's bytes and returns the reference to record on the
// owning user.
type Store interface {
	Save(ctx context.Context, ext, contentType string, r io.Reader) (string, error)
}
