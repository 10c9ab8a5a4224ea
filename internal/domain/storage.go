package domain

import (
	"context"
	"io"
)

// ObjectStorage stores user-uploaded files and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}
