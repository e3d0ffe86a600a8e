// Package services contains the application services behind the console
// commands: the remote collection service with its read cache, and the
// local fallback collection.
package services

import (
	"context"

	"github.com/dmitrijs2005/crudkeeper/internal/client/models"
)

// Collection is the CRUD contract every console screen is written against.
//
// Contract:
//   - List / GetByID: when useCache is set a fresh cached response is
//     returned without touching the store.
//   - Create / Update / Delete: a successful write invalidates the cached
//     list, and for Update/Delete the cached record.
//   - InvalidateAll: drop every cached response.
//   - Ping: cheap reachability probe.
//
// All failures are *common.Error values.
type Collection[T models.Record] interface {
	Name() string
	List(ctx context.Context, useCache bool) ([]T, error)
	GetByID(ctx context.Context, id string, useCache bool) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) error
	InvalidateAll()
	Ping(ctx context.Context) error
}
