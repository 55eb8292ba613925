package storage

import (
	"errors"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/syndtr/goleveldb/leveldb"
	lvstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDbStore keeps Data wires in a LevelDB database keyed by the
// component TLVs of the name.
type LevelDbStore struct {
	db *leveldb.DB
}

// NewLevelDbStore opens a store at path. An empty path gives an in-memory database.
func NewLevelDbStore(path string) (*LevelDbStore, error) {
	var db *leveldb.DB
	var err error
	if path == "" {
		db, err = leveldb.Open(lvstorage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}
	if err != nil {
		return nil, err
	}
	return &LevelDbStore{db: db}, nil
}

func (s *LevelDbStore) String() string {
	return "leveldb-store"
}

func (s *LevelDbStore) Close() error {
	return s.db.Close()
}

func (s *LevelDbStore) Get(name enc.Name, prefix bool) ([]byte, error) {
	key := name.BytesInner()
	if !prefix {
		wire, err := s.db.Get(key, nil)
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return wire, err
	}

	it := s.db.NewIterator(util.BytesPrefix(key), nil)
	defer it.Release()
	if !it.Last() {
		return nil, it.Error()
	}
	// the iterator owns the value buffer
	return append([]byte(nil), it.Value()...), nil
}

func (s *LevelDbStore) Put(name enc.Name, wire []byte) error {
	return s.db.Put(name.BytesInner(), wire, nil)
}

func (s *LevelDbStore) Remove(name enc.Name) error {
	return s.db.Delete(name.BytesInner(), nil)
}

// RemovePrefix drops every Data under the prefix.
func (s *LevelDbStore) RemovePrefix(prefix enc.Name) error {
	it := s.db.NewIterator(util.BytesPrefix(prefix.BytesInner()), nil)
	defer it.Release()

	batch := new(leveldb.Batch)
	for it.Next() {
		batch.Delete(it.Key())
	}
	if err := it.Error(); err != nil {
		return err
	}
	return s.db.Write(batch, nil)
}
