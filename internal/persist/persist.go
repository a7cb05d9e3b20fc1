package persist

import (
	"context"
)

// Store is a string-keyed snapshot mirror. Values are JSON documents; a
// missing key is reported through the bool, not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
