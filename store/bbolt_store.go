package store

import (
	"context"
	"fmt"
	"sync"

	"go.etcd.io/bbolt"
)

var secretsBucket = []byte("secrets")

// BoltStore is the primary SecretStore backend: a single-file, crash-
// consistent bbolt database fronted by an in-memory mirror.
//
// Every write commits to bbolt before the mirror is updated, so a crash
// between the two never leaves the mirror ahead of disk — on restart,
// NewBoltStore reloads the mirror from disk from scratch, discarding
// whatever the mirror held in the previous process. Reads are served from
// the mirror under an RWMutex; only writes touch bbolt synchronously on
// the hot path.
//
// Parameters:
//   - path: filesystem path to the bbolt database file; created if absent.
//
// Returns:
//   - *BoltStore: ready to use, with the mirror fully populated.
//   - error: if the file cannot be opened, the bucket cannot be created,
//     or any persisted entry fails to load — a partially loaded mirror is
//     treated as a fatal startup condition rather than served degraded.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: failed to open bbolt database %s: %w", path, err)
	}

	mirror := make(map[string][]byte)
	err = db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(secretsBucket)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return bucket.ForEach(func(k, v []byte) error {
			cp := make([]byte, len(v))
			copy(cp, v)
			mirror[string(k)] = cp
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to load bbolt mirror from %s: %w", path, err)
	}

	return &BoltStore{db: db, mirror: mirror}, nil
}

// BoltStore implements SecretStore on top of a bbolt database.
type BoltStore struct {
	db     *bbolt.DB
	mu     sync.RWMutex
	mirror map[string][]byte
}

func (s *BoltStore) Get(_ context.Context, key []byte) ([]byte, Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.mirror[string(key)]
	if !ok {
		return nil, ResultKeyNotFound, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, ResultKeyFound, nil
}

func (s *BoltStore) Set(_ context.Context, key, value []byte) (Result, error) {
	existed, err := s.persistSet(key, value)
	if err != nil {
		return ResultUnknown, err
	}

	s.mu.Lock()
	v := make([]byte, len(value))
	copy(v, value)
	s.mirror[string(key)] = v
	s.mu.Unlock()

	if existed {
		return ResultModified, nil
	}
	return ResultInserted, nil
}

func (s *BoltStore) persistSet(key, value []byte) (existed bool, err error) {
	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(secretsBucket)
		existed = bucket.Get(key) != nil
		return bucket.Put(key, value)
	})
	return existed, err
}

func (s *BoltStore) Remove(_ context.Context, key []byte) (Result, error) {
	var existed bool
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(secretsBucket)
		existed = bucket.Get(key) != nil
		return bucket.Delete(key)
	})
	if err != nil {
		return ResultUnknown, fmt.Errorf("store: bbolt remove: %w", err)
	}
	if !existed {
		return ResultKeyNotFound, nil
	}

	s.mu.Lock()
	delete(s.mirror, string(key))
	s.mu.Unlock()
	return ResultDeleted, nil
}

func (s *BoltStore) Check(_ context.Context, key []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.mirror[string(key)]
	return ok, nil
}

func (s *BoltStore) List(_ context.Context) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, 0, len(s.mirror))
	for k := range s.mirror {
		out = append(out, []byte(k))
	}
	return out, nil
}

func (s *BoltStore) Clear(_ context.Context) error {
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(secretsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(secretsBucket)
		return err
	}); err != nil {
		return fmt.Errorf("store: bbolt clear: %w", err)
	}

	s.mu.Lock()
	s.mirror = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

func (s *BoltStore) Close() error { return s.db.Close() }
