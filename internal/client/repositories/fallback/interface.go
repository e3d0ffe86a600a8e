package fallback

import (
	"context"
)

// Mutator receives the current value (nil when absent) and returns the value
// to store. Returning an error aborts the write.
type Mutator func(current []byte) ([]byte, error)

// Repository stores one blob per key. Get returns nil for a key that was
// never written or was deleted.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Update runs fn and stores its result atomically with respect to other
	// Update calls on the same repository.
	Update(ctx context.Context, key string, fn Mutator) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}
