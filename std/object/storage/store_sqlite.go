package storage

import (
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
	enc "github.com/named-data/ndnode/std/encoding"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS data (
	name BLOB PRIMARY KEY,
	wire BLOB NOT NULL
) WITHOUT ROWID`

// SqliteStore keeps Data wires in a sqlite table. Names are stored as the
// concatenated component TLVs so that BLOB order follows name order.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens the database at path, ":memory:" for a private in-memory one.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// a second connection to ":memory:" would see a different database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) String() string {
	return "sqlite-store"
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) Get(name enc.Name, prefix bool) ([]byte, error) {
	key := name.BytesInner()

	var row *sql.Row
	switch end := prefixEnd(key); {
	case !prefix:
		row = s.db.QueryRow("SELECT wire FROM data WHERE name=?", key)
	case end == nil:
		row = s.db.QueryRow("SELECT wire FROM data WHERE name>=? ORDER BY name DESC LIMIT 1", key)
	default:
		row = s.db.QueryRow("SELECT wire FROM data WHERE name>=? AND name<? ORDER BY name DESC LIMIT 1", key, end)
	}

	var wire []byte
	if err := row.Scan(&wire); errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return wire, nil
}

func (s *SqliteStore) Put(name enc.Name, wire []byte) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO data (name, wire) VALUES (?, ?)", name.BytesInner(), wire)
	return err
}

func (s *SqliteStore) Remove(name enc.Name) error {
	_, err := s.db.Exec("DELETE FROM data WHERE name=?", name.BytesInner())
	return err
}

// RemovePrefix drops every Data under the prefix.
func (s *SqliteStore) RemovePrefix(prefix enc.Name) error {
	key := prefix.BytesInner()
	var err error
	if end := prefixEnd(key); end == nil {
		_, err = s.db.Exec("DELETE FROM data WHERE name>=?", key)
	} else {
		_, err = s.db.Exec("DELETE FROM data WHERE name>=? AND name<?", key, end)
	}
	return err
}

// prefixEnd returns the smallest key greater than every key starting with
// key, or nil if there is none.
func prefixEnd(key []byte) []byte {
	end := append([]byte(nil), key...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
