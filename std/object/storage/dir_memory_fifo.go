package storage

import (
	"sync"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/ndn"
)

// MemoryFifoDir is a simple object directory that evicts the oldest name
// when it reaches its size.
type MemoryFifoDir struct {
	mutex sync.Mutex
	list  []enc.Name
	size  int
}

// NewMemoryFifoDir creates a new directory.
func NewMemoryFifoDir(size int) *MemoryFifoDir {
	return &MemoryFifoDir{
		list: make([]enc.Name, 0),
		size: size,
	}
}

// Push adds a name to the directory.
func (d *MemoryFifoDir) Push(name enc.Name) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.list = append(d.list, name.Clone())
}

// Pop removes the oldest name from the directory and returns it.
// If the directory has not exceeded its size, it returns nil.
func (d *MemoryFifoDir) Pop() enc.Name {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.list) <= d.size {
		return nil
	}

	name := d.list[0]
	d.list = d.list[1:]
	return name
}

// Len returns the number of names in the directory.
func (d *MemoryFifoDir) Len() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.list)
}

// Evict removes old names from a store until the directory is back to its size.
func (d *MemoryFifoDir) Evict(store ndn.Store) error {
	for {
		name := d.Pop()
		if name == nil {
			return nil
		}

		if err := store.Remove(name); err != nil {
			return err
		}
	}
}
