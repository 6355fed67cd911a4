package storage

import (
	"context"
	"io"
)

type AvatarStorage interface {
	// Upload stores the avatar object and returns its public URL.
	Upload(ctx context.Context, username string, r io.Reader, size int64, contentType string) (string, error)
}
