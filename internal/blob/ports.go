package blob

import (
	"context"
	"errors"
)

// Object is one document written to a store.
type Object struct {
	Key         string
	Body        []byte
	ContentType string
}

var ErrNotFound = errors.New("object not found")

// Ports for outbound adapters.
type (
	// ObjectWriter replaces the object stored under obj.Key.
	// Writes are idempotent: a second Put fully overwrites the first.
	ObjectWriter interface {
		Put(ctx context.Context, obj Object) error
	}

	// ObjectReader is implemented by stores that can serve their own
	// objects back (local development stores).
	ObjectReader interface {
		Get(ctx context.Context, key string) (Object, error)
	}
)
