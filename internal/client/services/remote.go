package services

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/dmitrijs2005/crudkeeper/internal/client/cache"
	"github.com/dmitrijs2005/crudkeeper/internal/client/client"
	"github.com/dmitrijs2005/crudkeeper/internal/client/models"
	"github.com/dmitrijs2005/crudkeeper/internal/common"
	"github.com/dmitrijs2005/crudkeeper/internal/logging"
)

// CollectionService is the data-access layer for one remote collection.
//
// Concurrent misses on the same key are not coalesced; each goes to the
// store and the last response to arrive wins the cache slot.
type CollectionService[T models.Record] struct {
	client     client.Client
	collection string
	cache      *cache.Cache
	log        logging.Logger
}

var _ Collection[models.Unicorn] = (*CollectionService[models.Unicorn])(nil)

// NewCollectionService binds a collection name to a client and a cache owned
// by this service.
func NewCollectionService[T models.Record](c client.Client, collection string, rc *cache.Cache, log logging.Logger) *CollectionService[T] {
	if rc == nil {
		rc = cache.New()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &CollectionService[T]{
		client:     c,
		collection: collection,
		cache:      rc,
		log:        log.With("collection", collection),
	}
}

func (s *CollectionService[T]) Name() string { return s.collection }

func (s *CollectionService[T]) op(name string) string {
	return s.collection + "." + name
}

func (s *CollectionService[T]) List(ctx context.Context, useCache bool) ([]T, error) {
	if useCache {
		if v, ok := s.cache.Get(cache.ListKey); ok {
			s.log.Debug(ctx, "cache hit", "key", cache.ListKey)
			return slices.Clone(v.([]T)), nil
		}
	}
	s.log.Debug(ctx, "remote call", "op", "list", "use_cache", useCache)

	raw, err := s.client.List(ctx, s.collection)
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, s.fail(ctx, "list", badBody(s.op("list"), err))
	}
	if items == nil {
		items = []T{}
	}

	s.cache.Set(cache.ListKey, items)
	return slices.Clone(items), nil
}

func (s *CollectionService[T]) GetByID(ctx context.Context, id string, useCache bool) (T, error) {
	var zero T
	if id == "" {
		return zero, common.MissingID(s.op("get"))
	}

	key := cache.RecordKey(id)
	if useCache {
		if v, ok := s.cache.Get(key); ok {
			s.log.Debug(ctx, "cache hit", "key", key)
			return v.(T), nil
		}
	}
	s.log.Debug(ctx, "remote call", "op", "get", "id", id, "use_cache", useCache)

	raw, err := s.client.Get(ctx, s.collection, id)
	if err != nil {
		return zero, s.fail(ctx, "get", err)
	}

	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return zero, s.fail(ctx, "get", badBody(s.op("get"), err))
	}

	s.cache.Set(key, rec)
	return rec, nil
}

// Create stores a new record and returns the stored representation,
// including the id the store assigned.
func (s *CollectionService[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := rec.Validate(); err != nil {
		return zero, err
	}

	body, err := encodeWithoutID(rec)
	if err != nil {
		return zero, &common.Error{Kind: common.KindFetch, Op: s.op("create"), Msg: "cannot encode record", Err: err}
	}
	s.log.Debug(ctx, "remote call", "op", "create")

	raw, err := s.client.Create(ctx, s.collection, body)
	if err != nil {
		return zero, s.fail(ctx, "create", err)
	}

	// The write succeeded; the cached list is now known stale whatever
	// happens to the response body.
	s.cache.Delete(cache.ListKey)

	var created T
	if err := json.Unmarshal(raw, &created); err != nil {
		return zero, s.fail(ctx, "create", badBody(s.op("create"), err))
	}
	return created, nil
}

// Update replaces the record stored under id. The id field is never sent.
// A 500 from the store surfaces as common.KindUnprocessableUpdate.
func (s *CollectionService[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T
	if id == "" {
		return zero, common.MissingID(s.op("update"))
	}
	if err := rec.Validate(); err != nil {
		return zero, err
	}

	body, err := encodeWithoutID(rec)
	if err != nil {
		return zero, &common.Error{Kind: common.KindFetch, Op: s.op("update"), Msg: "cannot encode record", Err: err}
	}
	s.log.Debug(ctx, "remote call", "op", "update", "id", id)

	raw, err := s.client.Update(ctx, s.collection, id, body)
	if err != nil {
		return zero, s.fail(ctx, "update", err)
	}

	s.cache.Delete(cache.ListKey, cache.RecordKey(id))

	if len(raw) == 0 {
		updated, err := withID(rec, id)
		if err != nil {
			return zero, s.fail(ctx, "update", badBody(s.op("update"), err))
		}
		return updated, nil
	}

	var updated T
	if err := json.Unmarshal(raw, &updated); err != nil {
		return zero, s.fail(ctx, "update", badBody(s.op("update"), err))
	}
	return updated, nil
}

// Delete removes the record; a nil error is the success acknowledgment.
func (s *CollectionService[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return common.MissingID(s.op("delete"))
	}
	s.log.Debug(ctx, "remote call", "op", "delete", "id", id)

	if err := s.client.Delete(ctx, s.collection, id); err != nil {
		return s.fail(ctx, "delete", err)
	}

	s.cache.Delete(cache.ListKey, cache.RecordKey(id))
	return nil
}

// InvalidateAll drops every cached response of this collection.
func (s *CollectionService[T]) InvalidateAll() {
	s.cache.Clear()
}

func (s *CollectionService[T]) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, s.collection); err != nil {
		return s.fail(ctx, "ping", err)
	}
	return nil
}

func (s *CollectionService[T]) fail(ctx context.Context, op string, err error) error {
	s.log.Warn(ctx, "operation failed", "op", op, "kind", common.KindOf(err).String(), "error", err)
	return err
}

func badBody(op string, err error) error {
	return &common.Error{Kind: common.KindFetch, Op: op, Msg: "invalid response body", Err: err}
}
