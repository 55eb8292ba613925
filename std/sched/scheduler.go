// Package sched provides a single-threaded timer queue on top of ndn.Timer.
package sched

import (
	"time"

	"github.com/named-data/ndnode/std/ndn"
	pq "github.com/named-data/ndnode/std/types/priority_queue"
)

type event struct {
	seq    uint64
	expiry time.Time
	f      func()
}

// Scheduler runs callbacks at future instants.
//
// All methods must be called from the goroutine that receives the firings of
// the underlying timer. Pending events are ordered by expiry, then by the
// order they were scheduled in.
type Scheduler struct {
	timer ndn.Timer

	queue  pq.Queue[*event, int64]
	events map[uint64]*pq.Item[*event, int64]
	seq    uint64
	gen    uint64

	// executing is set while a pass runs callbacks
	executing bool
	passSeq   uint64

	armed    func() error
	armedAt  time.Time
	armToken uint64
}

// EventId is a weak handle to a scheduled event.
// The zero value is an empty handle.
type EventId struct {
	s   *Scheduler
	gen uint64
	seq uint64
}

func NewScheduler(timer ndn.Timer) *Scheduler {
	return &Scheduler{
		timer:  timer,
		queue:  pq.New[*event, int64](),
		events: make(map[uint64]*pq.Item[*event, int64]),
	}
}

// Schedule registers f to run once, no earlier than now+delay.
// Negative delays are treated as zero.
func (s *Scheduler) Schedule(delay time.Duration, f func()) EventId {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	ev := &event{
		seq:    s.seq,
		expiry: s.timer.Now().Add(delay),
		f:      f,
	}
	s.events[ev.seq] = s.queue.Push(ev, ev.expiry.UnixNano())

	if !s.executing {
		s.scheduleNext()
	}
	return EventId{s: s, gen: s.gen, seq: ev.seq}
}

// Cancel removes a pending event. Empty, fired, cancelled or stale handles
// are ignored.
func (s *Scheduler) Cancel(id EventId) {
	if id.s != s || id.gen != s.gen {
		return
	}
	item, ok := s.events[id.seq]
	if !ok {
		return
	}
	delete(s.events, id.seq)
	s.queue.Remove(item)

	if !s.executing {
		s.scheduleNext()
	}
}

// CancelAll drops every pending event without running it.
// Handles issued before the call become stale.
func (s *Scheduler) CancelAll() {
	s.queue.Clear()
	s.events = make(map[uint64]*pq.Item[*event, int64])
	s.gen++
	s.disarm()
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return len(s.events)
}

// fire runs one pass over the due events.
// A panicking callback escapes to the caller. Events still due are then
// picked up by the next firing.
func (s *Scheduler) fire(token uint64) {
	if token == s.armToken {
		s.armed = nil
	}
	if s.executing {
		return
	}

	s.executing = true
	s.passSeq = s.seq
	defer func() {
		s.executing = false
		s.scheduleNext()
	}()

	now := s.timer.Now()
	for s.queue.Len() > 0 {
		ev := s.queue.Peek()
		// Events scheduled during this pass sort after every due event
		// that existed before it, since the clock does not go back.
		if ev.seq > s.passSeq || ev.expiry.After(now) {
			break
		}
		s.queue.Pop()
		delete(s.events, ev.seq)
		ev.f()
	}
}

func (s *Scheduler) scheduleNext() {
	if s.queue.Len() == 0 {
		s.disarm()
		return
	}

	next := s.queue.Peek().expiry
	if s.armed != nil && s.armedAt.Equal(next) {
		return
	}
	s.disarm()

	delay := next.Sub(s.timer.Now())
	if delay < 0 {
		delay = 0
	}
	s.armToken++
	token := s.armToken
	s.armedAt = next
	s.armed = s.timer.Schedule(delay, func() { s.fire(token) })
}

func (s *Scheduler) disarm() {
	if s.armed != nil {
		s.armed()
		s.armed = nil
	}
}

// Cancel cancels the event. It is a no-op on an empty or stale handle.
func (id EventId) Cancel() {
	if id.s != nil {
		id.s.Cancel(id)
	}
}

// IsEmpty reports whether the handle was never assigned.
func (id EventId) IsEmpty() bool {
	return id.s == nil
}
