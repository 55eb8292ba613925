package storage

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	enc "github.com/named-data/ndnode/std/encoding"
)

// BadgerStore keeps Data wires in a badger database keyed by the
// component TLVs of the name.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a store at path. An empty path gives an in-memory database.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) String() string {
	return "badger-store"
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) Get(name enc.Name, prefix bool) (wire []byte, err error) {
	key := name.BytesInner()
	err = s.db.View(func(txn *badger.Txn) error {
		if !prefix {
			item, err := txn.Get(key)
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			} else if err != nil {
				return err
			}
			wire, err = item.ValueCopy(nil)
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Seek(append(key, 0xFF))
		if !it.ValidForPrefix(key) {
			return nil
		}

		wire, err = it.Item().ValueCopy(nil)
		return err
	})

	return
}

func (s *BadgerStore) Put(name enc.Name, wire []byte) error {
	key := name.BytesInner()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, wire)
	})
}

func (s *BadgerStore) Remove(name enc.Name) error {
	key := name.BytesInner()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// RemovePrefix drops every Data under the prefix.
func (s *BadgerStore) RemovePrefix(prefix enc.Name) error {
	keyPfx := prefix.BytesInner()
	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // keys only
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(keyPfx); it.ValidForPrefix(keyPfx); it.Next() {
			if err := txn.Delete(it.Item().KeyCopy(nil)); err != nil {
				return err
			}
		}
		return nil
	})
}
