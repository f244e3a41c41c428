package ports

import "context"

// PhotoStore is the content-addressable blob store for enrollment photos.
type PhotoStore interface {
	// Put uploads the object under key and returns its retrievable URL.
	// Keys are never reused across unrelated enrollments; objects orphaned
	// by re-enrollment are left in place.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
