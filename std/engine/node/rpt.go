package node

import (
	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/ndn"
)

type rptEntry struct {
	id         uint64
	prefix     enc.Name
	onInterest ndn.OnInterest
}

// rpt holds registered prefixes in registration order.
type rpt struct {
	entries []*rptEntry
}

func (r *rpt) add(entry *rptEntry) {
	r.entries = append(r.entries, entry)
}

func (r *rpt) remove(id uint64) int {
	removed := 0
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			removed++
		}
	}
	return removed
}

// lookup returns the entry with the most components; the earliest wins a tie.
// Unless strict is set, entries are not checked against the Interest name,
// so any registered entry receives Interests.
func (r *rpt) lookup(name enc.Name, strict bool) *rptEntry {
	var best *rptEntry
	for _, entry := range r.entries {
		if strict && !entry.prefix.IsPrefix(name) {
			continue
		}
		if best == nil || len(entry.prefix) > len(best.prefix) {
			best = entry
		}
	}
	return best
}

func (r *rpt) len() int {
	return len(r.entries)
}
