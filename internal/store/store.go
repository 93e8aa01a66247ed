// SPDX-License-Identifier: Unlicense OR MIT

// Package store persists recorded traces in a bbolt database.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"

	"swipe.dev/trace"
)

const bucketTraces = "traces"

// ErrNoTrace is returned by Get and Delete for unknown names.
var ErrNoTrace = errors.New("no such trace")

// initDB holds the steps run on every opened database.
var initDB = map[string]func(tx *bolt.Tx) error{
	"initialize trace table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketTraces))
		return err
	},
}

// Store is a trace database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path, creating missing
// parent directories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores tr under its name, replacing any trace with the same
// name.
func (s *Store) Put(tr trace.Trace) error {
	if tr.Name == "" {
		return errors.New("trace has no name")
	}
	data, err := yaml.Marshal(tr)
	if err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTraces)).Put([]byte(tr.Name), data)
	})
}

// Get returns the trace with the given name.
func (s *Store) Get(name string) (trace.Trace, error) {
	var tr trace.Trace
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketTraces)).Get([]byte(name))
		if v == nil {
			return ErrNoTrace
		}
		return yaml.Unmarshal(v, &tr)
	})
	if err != nil {
		return trace.Trace{}, fmt.Errorf("%s: %w", name, err)
	}
	return tr, nil
}

// Delete removes the trace with the given name.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTraces))
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%s: %w", name, ErrNoTrace)
		}
		return b.Delete([]byte(name))
	})
}

// Names lists the stored trace names in order.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTraces)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
