package node

import (
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/ndn"
)

type pitEntry struct {
	id        uint64
	interest  *ndn.Interest
	nameHash  uint64
	onData    ndn.OnData
	onTimeout ndn.OnTimeout
	deadline  time.Time
}

// pit holds pending Interests in insertion order.
type pit struct {
	entries []*pitEntry
}

func (p *pit) insert(entry *pitEntry) {
	entry.nameHash = entry.interest.Name.Hash()
	p.entries = append(p.entries, entry)
}

// remove drops every entry with the given id without invoking callbacks.
func (p *pit) remove(id uint64) int {
	removed := 0
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i].id == id {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			removed++
		}
	}
	return removed
}

// matchAndConsume removes and returns the first entry whose Interest name is
// a prefix of the Data name, or nil.
func (p *pit) matchAndConsume(name enc.Name) *pitEntry {
	var hashes []uint64
	for i, entry := range p.entries {
		l := len(entry.interest.Name)
		if l > len(name) {
			continue
		}
		if hashes == nil {
			hashes = name.PrefixHash()
		}
		if hashes[l] != entry.nameHash || !entry.interest.MatchesName(name) {
			continue
		}
		p.entries = append(p.entries[:i], p.entries[i+1:]...)
		return entry
	}
	return nil
}

// expire removes entries whose deadline has passed, newest first, and calls
// onTimeout for each after removal. Panics raised by onTimeout are discarded.
// The clock is sampled again after every callback.
func (p *pit) expire(now func() time.Time, onExpired func(*pitEntry)) {
	t := now()
	for i := len(p.entries) - 1; i >= 0; i-- {
		if i >= len(p.entries) {
			// a callback removed entries
			i = len(p.entries)
			continue
		}
		entry := p.entries[i]
		if entry.deadline.After(t) {
			continue
		}
		p.entries = append(p.entries[:i], p.entries[i+1:]...)
		callTimeout(entry)
		if onExpired != nil {
			onExpired(entry)
		}
		t = now()
	}
}

func callTimeout(entry *pitEntry) {
	if entry.onTimeout == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logDiscardedPanic(entry, r)
		}
	}()
	entry.onTimeout(entry.interest)
}

func (p *pit) len() int {
	return len(p.entries)
}
