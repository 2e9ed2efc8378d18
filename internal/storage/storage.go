// Package storage persists uploaded post images. Keys are bare file names
// such as "1718000000000-1a2b3c4d.png"; backends decide where they live and
// how they are addressed publicly.
package storage

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned for keys that are empty or contain path elements.
var ErrInvalidKey = errors.New("invalid storage key")

type Store interface {
	// Save stores data under key. It fails if the key is already taken.
	Save(ctx context.Context, key, contentType string, data []byte) error
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
	// URL returns the public address of key.
	URL(key string) string
}
