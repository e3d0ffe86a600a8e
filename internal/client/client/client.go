package client

import (
	"context"
	"encoding/json"
)

// Client moves raw JSON bodies to and from one collection store.
type Client interface {
	Close() error
	List(ctx context.Context, collection string) (json.RawMessage, error)
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	Create(ctx context.Context, collection string, body []byte) (json.RawMessage, error)
	// Update may return an empty body; the store is not required to echo the record.
	Update(ctx context.Context, collection, id string, body []byte) (json.RawMessage, error)
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context, collection string) error
}
