package fallback

import (
	"context"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

const bucketName = "blobs"

type BoltRepository struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) a Bolt file at path and ensures the bucket
// exists.
func OpenBolt(path string) (*BoltRepository, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}

// Bolt transactions are not context aware; ctx is only checked up front.

func (r *BoltRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var value []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(key)); v != nil {
			// v is only valid inside the transaction.
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get blob[%s]: %w", key, err)
	}
	return value, nil
}

func (r *BoltRepository) Update(ctx context.Context, key string, fn Mutator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		var current []byte
		if v := b.Get([]byte(key)); v != nil {
			current = append([]byte(nil), v...)
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), next)
	})
}

func (r *BoltRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob[%s]: %w", key, err)
	}
	return nil
}

func (r *BoltRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear blobs: %w", err)
	}
	return nil
}

func (r *BoltRepository) List(ctx context.Context) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make(map[string][]byte)
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(k, v []byte) error {
			result[string(k)] = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	return result, nil
}
