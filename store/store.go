// Package store persists built automata in a bbolt database. Each
// automaton gets its own top-level bucket holding the binary state blob
// and a JSON value table. Writes are transactional; a crash mid-write
// cannot corrupt a previously saved automaton.
package store

import (
	"fmt"
	"time"

	"github.com/sugawarayuuta/sonnet"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	keyState  = []byte("state")
	keyValues = []byte("values")
)

// Store is a bbolt-backed container for named automata.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) a store at the given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Encoded is satisfied by both automaton variants; it is what Save
// needs to persist one.
type Encoded[V any] interface {
	EncodeState() []byte
	Values() []V
}

// SaveAutomaton persists an automaton under name.
func SaveAutomaton[V any](s *Store, name string, a Encoded[V]) error {
	return Save(s, name, a.EncodeState(), a.Values())
}

// Save persists a state blob and its value table under name,
// overwriting any previous automaton of that name.
func Save[V any](s *Store, name string, state []byte, values []V) error {
	if name == "" {
		return fmt.Errorf("store: empty automaton name")
	}
	valuesJSON, err := sonnet.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal values: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
		if err := b.Put(keyState, state); err != nil {
			return err
		}
		return b.Put(keyValues, valuesJSON)
	})
}

// Load retrieves the state blob and value table saved under name.
func Load[V any](s *Store, name string) (state []byte, values []V, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(name))
		if b == nil {
			return fmt.Errorf("store: no automaton named %q", name)
		}
		// bbolt memory is only valid inside the transaction; copy out.
		state = append([]byte(nil), b.Get(keyState)...)
		valuesJSON := b.Get(keyValues)
		if valuesJSON == nil {
			return fmt.Errorf("store: automaton %q has no value table", name)
		}
		return sonnet.Unmarshal(valuesJSON, &values)
	})
	if err != nil {
		return nil, nil, err
	}
	return state, values, nil
}

// Names lists the saved automata.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes a saved automaton. Deleting a missing name is not an
// error.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(name)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(name))
	})
}
