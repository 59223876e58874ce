// Package store provides Badger-backed persistence for both halves of the
// system: the device-local continuation state (recently played, notes, the
// first-launch flag) and the content API's book/chapter collections.
//
// Values are JSON documents. List-shaped keys (history, notes) are always
// rewritten whole inside a single transaction, so readers never observe a
// partially-applied read-modify-write.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/ubugingoapp/ubugingo-server/internal/errors"
)

// Local state keys. Names match the legacy client's key-value store so a
// migrated device keeps its history and notes.
const (
	keyRecentlyPlayed = "recentlyPlayed"
	keyVideoNotes     = "videoNotes"
	keyFirstLaunch    = "firstLaunch"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// writeMu serializes read-modify-write cycles over list keys.
	// Writes originate from user-driven, effectively serialized actions;
	// last-writer-wins is the accepted policy.
	writeMu sync.Mutex
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Disable Badger's internal logging
	opts.SyncWrites = true // Sync writes to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{db: db, logger: logger}
	if logger != nil {
		logger.Info("database opened", "path", path)
	}
	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing database connection")
	}
	return s.db.Close()
}

// get retrieves a value by key. Missing keys map to errors.ErrNotFound.
func (s *Store) get(key string, dest any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrNotFound
	}
	return err
}

// set stores a value by key.
func (s *Store) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to marshal value")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// updateList atomically replaces the list stored at key with fn's result.
// A missing key reads as an empty list. The whole cycle runs inside one
// transaction under the writer mutex.
func updateList[T any](s *Store, key string, fn func(current []T) ([]T, error)) ([]T, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var result []T
	err := s.db.Update(func(txn *badger.Txn) error {
		var current []T
		item, err := txn.Get([]byte(key))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			// first write for this key
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &current)
			}); err != nil {
				return err
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return err
		}
		result = next
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to update "+key)
	}
	return result, nil
}

// readList loads the list stored at key; a missing key is an empty list.
func readList[T any](s *Store, key string) ([]T, error) {
	var list []T
	err := s.get(key, &list)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to read "+key)
	}
	return list, nil
}

// FirstLaunch reports whether the app has never been opened on this device.
func (s *Store) FirstLaunch() (bool, error) {
	var launched bool
	err := s.get(keyFirstLaunch, &launched)
	if errors.Is(err, errors.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !launched, nil
}

// MarkLaunched clears the first-launch flag.
func (s *Store) MarkLaunched() error {
	return s.set(keyFirstLaunch, true)
}
