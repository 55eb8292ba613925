package storage

import (
	"slices"
	"sync"

	enc "github.com/named-data/ndnode/std/encoding"
)

// MemoryStore is a component trie of Data wires.
type MemoryStore struct {
	root  *memoryStoreNode
	mutex sync.RWMutex
}

type memoryStoreNode struct {
	// children keyed by component TLV
	children map[string]*memoryStoreNode
	wire     []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		root: &memoryStoreNode{},
	}
}

func (s *MemoryStore) String() string {
	return "memory-store"
}

func (s *MemoryStore) Get(name enc.Name, prefix bool) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	node := s.root.find(name)
	if node == nil {
		return nil, nil
	}
	if prefix {
		node = node.findLast()
	}
	return node.wire, nil
}

func (s *MemoryStore) Put(name enc.Name, wire []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.root.insert(name, wire)
	return nil
}

func (s *MemoryStore) Remove(name enc.Name) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.root.remove(name, false)
	return nil
}

// RemovePrefix drops every Data under the prefix.
func (s *MemoryStore) RemovePrefix(prefix enc.Name) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.root.remove(prefix, true)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// MemSize returns the total size of the stored wires.
func (s *MemoryStore) MemSize() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	size := 0
	s.root.walk(func(n *memoryStoreNode) { size += len(n.wire) })
	return size
}

func (n *memoryStoreNode) find(name enc.Name) *memoryStoreNode {
	if len(name) == 0 {
		return n
	}
	if child := n.children[string(name[0].Bytes())]; child != nil {
		return child.find(name[1:])
	}
	return nil
}

// findLast returns the node holding the lexicographically last wire in the
// subtree. A node's own wire sorts before any of its children.
func (n *memoryStoreNode) findLast() *memoryStoreNode {
	keys := make([]string, 0, len(n.children))
	for key := range n.children {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for i := len(keys) - 1; i >= 0; i-- {
		if last := n.children[keys[i]].findLast(); last.wire != nil {
			return last
		}
	}
	return n
}

func (n *memoryStoreNode) insert(name enc.Name, wire []byte) {
	if len(name) == 0 {
		n.wire = wire
		return
	}

	if n.children == nil {
		n.children = make(map[string]*memoryStoreNode)
	}

	key := string(name[0].Bytes())
	child := n.children[key]
	if child == nil {
		child = &memoryStoreNode{}
		n.children[key] = child
	}
	child.insert(name[1:], wire)
}

// remove returns whether the parent should prune this node.
func (n *memoryStoreNode) remove(name enc.Name, prefix bool) bool {
	if len(name) == 0 {
		n.wire = nil
		if prefix {
			n.children = nil
		}
		return len(n.children) == 0
	}

	key := string(name[0].Bytes())
	if child := n.children[key]; child != nil {
		if child.remove(name[1:], prefix) {
			delete(n.children, key)
		}
	}

	return n.wire == nil && len(n.children) == 0
}

func (n *memoryStoreNode) walk(f func(*memoryStoreNode)) {
	f(n)
	for _, child := range n.children {
		child.walk(f)
	}
}
