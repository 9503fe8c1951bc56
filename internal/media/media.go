package media

import "context"

// Uploader stores binary media with an external hosting provider and returns
// a durable public URL for each stored object.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}
