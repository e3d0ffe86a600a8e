package fallback

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type driverCase struct {
	name string
	open func(t *testing.T) Repository
}

func drivers() []driverCase {
	return []driverCase{
		{name: "sqlite", open: func(t *testing.T) Repository {
			r, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "fallback.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = r.Close() })
			return r
		}},
		{name: "bolt", open: func(t *testing.T) Repository {
			r, err := Open(context.Background(), DriverBolt, filepath.Join(t.TempDir(), "fallback.bolt"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = r.Close() })
			return r
		}},
	}
}

func put(t *testing.T, r Repository, key string, value []byte) {
	t.Helper()
	require.NoError(t, r.Update(context.Background(), key, func([]byte) ([]byte, error) {
		return value, nil
	}))
}

func TestRepository_Contract(t *testing.T) {
	for _, d := range drivers() {
		t.Run(d.name, func(t *testing.T) {
			r := d.open(t)
			ctx := context.Background()

			v, err := r.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, v)

			put(t, r, "products", []byte(`[]`))
			put(t, r, "products", []byte(`[{"name":"x"}]`))
			put(t, r, "other", []byte{0x01})

			v, err = r.Get(ctx, "products")
			require.NoError(t, err)
			assert.Equal(t, `[{"name":"x"}]`, string(v))

			all, err := r.List(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2)
			assert.Equal(t, []byte{0x01}, all["other"])

			require.NoError(t, r.Delete(ctx, "other"))
			require.NoError(t, r.Delete(ctx, "other"), "deleting a missing key is fine")
			v, err = r.Get(ctx, "other")
			require.NoError(t, err)
			assert.Nil(t, v, "deleted keys read as absent")
			all, err = r.List(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)

			require.NoError(t, r.Clear(ctx))
			all, err = r.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestRepository_Update(t *testing.T) {
	for _, d := range drivers() {
		t.Run(d.name, func(t *testing.T) {
			r := d.open(t)
			ctx := context.Background()

			require.NoError(t, r.Update(ctx, "k", func(cur []byte) ([]byte, error) {
				assert.Nil(t, cur)
				return []byte("one"), nil
			}))
			require.NoError(t, r.Update(ctx, "k", func(cur []byte) ([]byte, error) {
				return append(cur, []byte("-two")...), nil
			}))

			v, err := r.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "one-two", string(v))

			boom := errors.New("boom")
			err = r.Update(ctx, "k", func(cur []byte) ([]byte, error) { return nil, boom })
			require.ErrorIs(t, err, boom)

			v, err = r.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "one-two", string(v), "aborted update leaves the value alone")
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "redis", "x")
	require.Error(t, err)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fallback.db")

	r, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	put(t, r, "products", []byte(`[1]`))
	require.NoError(t, r.Close())

	r, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	v, err := r.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(v))
}

func TestBolt_CanceledContext(t *testing.T) {
	r, err := OpenBolt(filepath.Join(t.TempDir(), "x.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("v"), nil })
	require.ErrorIs(t, err, context.Canceled)
}
