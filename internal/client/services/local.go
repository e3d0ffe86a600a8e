package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/crudkeeper/internal/client/models"
	"github.com/dmitrijs2005/crudkeeper/internal/client/repositories/fallback"
	"github.com/dmitrijs2005/crudkeeper/internal/common"
	"github.com/dmitrijs2005/crudkeeper/internal/logging"
	"github.com/google/uuid"
)

// LocalService keeps a collection as one JSON array blob in the fallback
// store. It never talks to the remote store and has nothing to cache.
type LocalService[T models.Record] struct {
	repo       fallback.Repository
	collection string
	seed       []T
	newID      func() string
	log        logging.Logger
}

var _ Collection[models.Product] = (*LocalService[models.Product])(nil)

func NewLocalService[T models.Record](repo fallback.Repository, collection string, log logging.Logger) *LocalService[T] {
	if log == nil {
		log = logging.Discard()
	}
	return &LocalService[T]{
		repo:       repo,
		collection: collection,
		newID:      uuid.NewString,
		log:        log.With("collection", collection, "store", "local"),
	}
}

// WithSeed sets the records a collection starts with while its blob has never
// been written or after Reset. A stored empty list stays empty.
func (s *LocalService[T]) WithSeed(items ...T) *LocalService[T] {
	s.seed = slices.Clone(items)
	return s
}

func (s *LocalService[T]) Name() string { return s.collection }

func (s *LocalService[T]) op(name string) string {
	return s.collection + ".local." + name
}

// decode turns a stored blob into records; an absent blob yields the seed.
func (s *LocalService[T]) decode(blob []byte) ([]T, error) {
	if blob == nil && len(s.seed) > 0 {
		return slices.Clone(s.seed), nil
	}
	return decodeBlob[T](blob)
}

func decodeBlob[T any](blob []byte) ([]T, error) {
	items := []T{}
	if len(blob) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("decode local blob: %w", err)
	}
	return items, nil
}

func (s *LocalService[T]) storeErr(op string, err error) error {
	var ce *common.Error
	if errors.As(err, &ce) {
		return err
	}
	return &common.Error{Kind: common.KindFetch, Op: s.op(op), Msg: "local store failure", Err: err}
}

func (s *LocalService[T]) List(ctx context.Context, _ bool) ([]T, error) {
	blob, err := s.repo.Get(ctx, s.collection)
	if err != nil {
		return nil, s.storeErr("list", err)
	}
	items, err := s.decode(blob)
	if err != nil {
		return nil, s.storeErr("list", err)
	}
	return items, nil
}

func (s *LocalService[T]) GetByID(ctx context.Context, id string, _ bool) (T, error) {
	var zero T
	if id == "" {
		return zero, common.MissingID(s.op("get"))
	}
	items, err := s.List(ctx, false)
	if err != nil {
		return zero, err
	}
	for _, it := range items {
		if it.GetID() == id {
			return it, nil
		}
	}
	return zero, &common.Error{Kind: common.KindNotFound, Op: s.op("get"), Msg: "record not found"}
}

// mutate applies fn to the decoded blob inside one repository update.
func (s *LocalService[T]) mutate(ctx context.Context, op string, fn func(items []T) ([]T, error)) error {
	err := s.repo.Update(ctx, s.collection, func(current []byte) ([]byte, error) {
		items, err := s.decode(current)
		if err != nil {
			return nil, err
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
	if err != nil {
		return s.storeErr(op, err)
	}
	return nil
}

func (s *LocalService[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := rec.Validate(); err != nil {
		return zero, err
	}

	created, err := withID(rec, s.newID())
	if err != nil {
		return zero, s.storeErr("create", err)
	}

	err = s.mutate(ctx, "create", func(items []T) ([]T, error) {
		return append(items, created), nil
	})
	if err != nil {
		return zero, err
	}
	s.log.Debug(ctx, "record created", "id", created.GetID())
	return created, nil
}

func (s *LocalService[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T
	if id == "" {
		return zero, common.MissingID(s.op("update"))
	}
	if err := rec.Validate(); err != nil {
		return zero, err
	}

	updated, err := withID(rec, id)
	if err != nil {
		return zero, s.storeErr("update", err)
	}

	err = s.mutate(ctx, "update", func(items []T) ([]T, error) {
		for i, it := range items {
			if it.GetID() == id {
				items[i] = updated
				return items, nil
			}
		}
		return nil, &common.Error{Kind: common.KindNotFound, Op: s.op("update"), Msg: "record not found"}
	})
	if err != nil {
		return zero, err
	}
	return updated, nil
}

func (s *LocalService[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return common.MissingID(s.op("delete"))
	}
	return s.mutate(ctx, "delete", func(items []T) ([]T, error) {
		for i, it := range items {
			if it.GetID() == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, &common.Error{Kind: common.KindNotFound, Op: s.op("delete"), Msg: "record not found"}
	})
}

// Reset drops the stored blob, so the collection is back to its seed.
func (s *LocalService[T]) Reset(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.collection); err != nil {
		return s.storeErr("reset", err)
	}
	s.log.Info(ctx, "local collection reset")
	return nil
}

// InvalidateAll is a no-op: there is no cache in front of the local blob.
func (s *LocalService[T]) InvalidateAll() {}

func (s *LocalService[T]) Ping(ctx context.Context) error { return nil }
