// Package kvstore provides the persistent key-value store used by most of the
// application: a mapping from structured string keys to JSON blobs that are
// read and written wholesale. There is no partial update and no querying;
// collections are always persisted as a whole.
package kvstore

import "context"

type Store interface {
	// Get returns the blob stored under key. The second return value is
	// false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
