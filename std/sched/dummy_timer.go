package sched

import (
	"fmt"
	"sync"
	"time"

	pq "github.com/named-data/ndnode/std/types/priority_queue"
)

type dummyEvent struct {
	t time.Time
	f func()
}

// DummyTimer is a virtual clock for tests. Time only moves on MoveForward.
type DummyTimer struct {
	now    time.Time
	events pq.Queue[*dummyEvent, int64]
	lock   sync.Mutex
}

// NewDummyTimer creates a timer starting at the Unix epoch.
func NewDummyTimer() *DummyTimer {
	return &DummyTimer{
		now:    time.Unix(0, 0).UTC(),
		events: pq.New[*dummyEvent, int64](),
	}
}

func (tm *DummyTimer) Now() time.Time {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.now
}

// MoveForward advances the clock by d and runs every event that became due,
// earliest first. Events scheduled by a callback run too if they are due.
func (tm *DummyTimer) MoveForward(d time.Duration) {
	tm.lock.Lock()
	tm.now = tm.now.Add(d)
	tm.lock.Unlock()

	for {
		f := tm.popDue()
		if f == nil {
			return
		}
		f()
	}
}

func (tm *DummyTimer) popDue() func() {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	if tm.events.Len() == 0 || tm.events.Peek().t.After(tm.now) {
		return nil
	}
	return tm.events.Pop().f
}

func (tm *DummyTimer) Schedule(d time.Duration, f func()) func() error {
	tm.lock.Lock()
	defer tm.lock.Unlock()

	t := tm.now.Add(d)
	item := tm.events.Push(&dummyEvent{t: t, f: f}, t.UnixNano())
	return func() error {
		tm.lock.Lock()
		defer tm.lock.Unlock()
		if !item.InQueue() {
			return fmt.Errorf("event has already been canceled")
		}
		tm.events.Remove(item)
		return nil
	}
}

// Pending returns the number of events that have not fired.
func (tm *DummyTimer) Pending() int {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.events.Len()
}

func (*DummyTimer) Nonce() []byte {
	return []byte{0x01, 0x02, 0x03, 0x04}
}
