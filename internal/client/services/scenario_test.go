package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/crudkeeper/internal/client/cache"
	"github.com/dmitrijs2005/crudkeeper/internal/client/client"
	"github.com/dmitrijs2005/crudkeeper/internal/client/models"
	"github.com/dmitrijs2005/crudkeeper/internal/common"
	"github.com/dmitrijs2005/crudkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crudStore is an in-memory stand-in for the hosted collection store. It
// behaves like crudcrud: POST echoes the record with "_id", PUT answers 200
// with no body and rejects bodies that carry "_id", DELETE answers 200.
type crudStore struct {
	mu       sync.Mutex
	ids      []string
	records  map[string]map[string]any
	order    []string
	requests map[string]int
	failPut  int
}

func newCrudStore(ids ...string) *crudStore {
	return &crudStore{ids: ids, records: map[string]map[string]any{}, requests: map[string]int{}}
}

func (s *crudStore) count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method]
}

func (s *crudStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.Method]++

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// api/<endpoint>/<collection>[/<id>]
	if len(parts) < 3 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	id := ""
	if len(parts) == 4 {
		id = parts[3]
	}

	switch {
	case r.Method == http.MethodGet && id == "":
		out := make([]map[string]any, 0, len(s.order))
		for _, k := range s.order {
			out = append(out, s.records[k])
		}
		_ = json.NewEncoder(w).Encode(out)

	case r.Method == http.MethodGet:
		rec, ok := s.records[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(rec)

	case r.Method == http.MethodPost:
		var rec map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		newID := s.ids[0]
		s.ids = s.ids[1:]
		rec[common.IDField] = newID
		s.records[newID] = rec
		s.order = append(s.order, newID)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(rec)

	case r.Method == http.MethodPut:
		if s.failPut != 0 {
			w.WriteHeader(s.failPut)
			return
		}
		var rec map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, has := rec[common.IDField]; has {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if _, ok := s.records[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		rec[common.IDField] = id
		s.records[id] = rec
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodDelete:
		if _, ok := s.records[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(s.records, id)
		for i, k := range s.order {
			if k == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newScenario(t *testing.T, store *crudStore) *CollectionService[models.Unicorn] {
	t.Helper()
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	hc, err := client.NewHTTPClient(srv.URL+"/api", "ep1")
	require.NoError(t, err)
	return NewCollectionService[models.Unicorn](hc, models.CollectionUnicorns, cache.New(), logging.Discard())
}

func TestScenario_CreateThenGet(t *testing.T) {
	store := newCrudStore("abc123")
	svc := newScenario(t, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, spark)
	require.NoError(t, err)
	assert.Equal(t, "abc123", created.ID)

	got, err := svc.GetByID(ctx, "abc123", false)
	require.NoError(t, err)

	want := spark
	want.ID = "abc123"
	assert.Equal(t, want, got)
}

func TestScenario_DeleteThenList(t *testing.T) {
	store := newCrudStore("abc123", "def456")
	svc := newScenario(t, store)
	ctx := context.Background()

	_, err := svc.Create(ctx, spark)
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.Unicorn{Name: "Dusk", Color: "black", Age: 300, Power: "shadows"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "abc123"))

	items, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	for _, u := range items {
		assert.NotEqual(t, "abc123", u.ID)
	}

	err = svc.Delete(ctx, "abc123")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestScenario_ListTwiceOneRequest(t *testing.T) {
	store := newCrudStore()
	svc := newScenario(t, store)
	ctx := context.Background()

	_, err := svc.List(ctx, true)
	require.NoError(t, err)
	_, err = svc.List(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, 1, store.count(http.MethodGet))
}

func TestScenario_MutationForcesNextListToNetwork(t *testing.T) {
	store := newCrudStore("abc123")
	svc := newScenario(t, store)
	ctx := context.Background()

	_, err := svc.List(ctx, true)
	require.NoError(t, err)

	created, err := svc.Create(ctx, spark)
	require.NoError(t, err)
	items, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, store.count(http.MethodGet))

	created.Color = "silver"
	_, err = svc.Update(ctx, created.ID, created)
	require.NoError(t, err)
	items, err = svc.List(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "silver", items[0].Color)
	assert.Equal(t, 3, store.count(http.MethodGet))

	require.NoError(t, svc.Delete(ctx, created.ID))
	items, err = svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 4, store.count(http.MethodGet))
}

func TestScenario_Update500IsUnprocessable(t *testing.T) {
	store := newCrudStore("abc123")
	svc := newScenario(t, store)
	ctx := context.Background()

	created, err := svc.Create(ctx, spark)
	require.NoError(t, err)

	store.mu.Lock()
	store.failPut = http.StatusInternalServerError
	store.mu.Unlock()

	_, err = svc.Update(ctx, created.ID, created)
	require.ErrorIs(t, err, common.ErrUnprocessableUpdate)
	assert.NotErrorIs(t, err, common.ErrFetch)
}
