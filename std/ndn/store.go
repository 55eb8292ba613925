package ndn

import enc "github.com/named-data/ndnode/std/encoding"

// Store keeps encoded Data packets for a producer.
type Store interface {
	// Get returns a Data wire matching the given name
	// prefix = return the lexicographically last Data wire with the given prefix
	// A missing Data is not an error: (nil, nil) is returned.
	Get(name enc.Name, prefix bool) ([]byte, error)
	// Put inserts a Data wire into the store
	Put(name enc.Name, wire []byte) error
	// Remove removes a Data wire from the store
	Remove(name enc.Name) error
	// Close releases the backing resources.
	Close() error
}
