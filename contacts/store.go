// Package contacts persists resolved aliases so the wallet can show a
// name for a previously used destination without re-resolving it.
package contacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketContacts = []byte("contacts")

// Contact types.
const (
	TypeOpenAlias = "openalias"
	TypeManual    = "manual"
)

// Contact is a stored payment contact.
type Contact struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Store wraps a bbolt database of contacts keyed by alias.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the contact database at dbPath. The parent
// directory is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("contacts: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("contacts: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketContacts)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("contacts: create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Put stores or replaces the contact for key.
func (s *Store) Put(key string, c Contact) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("contacts: encode %q: %w", key, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketContacts).Put([]byte(key), data)
	})
}

// Get returns the contact stored for key.
func (s *Store) Get(key string) (Contact, error) {
	var c Contact
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketContacts).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return json.Unmarshal(data, &c)
	})
	return c, err
}

// Delete removes the contact for key. Deleting a missing key is not
// an error.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketContacts).Delete([]byte(key))
	})
}

// List returns all stored contacts keyed by alias.
func (s *Store) List() (map[string]Contact, error) {
	out := make(map[string]Contact)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketContacts).ForEach(func(k, v []byte) error {
			var c Contact
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("contacts: decode %q: %w", k, err)
			}
			out[string(k)] = c
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
