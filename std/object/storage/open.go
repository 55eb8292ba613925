package storage

import (
	"fmt"
	"strings"

	"github.com/named-data/ndnode/std/ndn"
)

// Open creates a store from a URI.
//
//	memory://            in-process trie
//	badger://PATH        badger database directory, empty PATH for in-memory
//	sqlite://PATH        sqlite database file, empty PATH for in-memory
//	leveldb://PATH       LevelDB database directory, empty PATH for in-memory
func Open(uri string) (ndn.Store, error) {
	scheme, path, found := strings.Cut(uri, "://")
	if !found {
		return nil, fmt.Errorf("invalid store uri: %s", uri)
	}

	switch scheme {
	case "memory":
		return NewMemoryStore(), nil
	case "badger":
		return NewBadgerStore(path)
	case "sqlite":
		if path == "" {
			path = ":memory:"
		}
		return NewSqliteStore(path)
	case "leveldb":
		return NewLevelDbStore(path)
	default:
		return nil, fmt.Errorf("unknown store scheme: %s", scheme)
	}
}
