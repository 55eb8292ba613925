// Package node implements the client-side forwarding core: it matches Data to
// pending Interests, expires Interests, dispatches inbound Interests to
// registered prefixes and registers prefixes with the hub.
package node

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/log"
	"github.com/named-data/ndnode/std/ndn"
	spec "github.com/named-data/ndnode/std/ndn/spec_2013"
	"github.com/named-data/ndnode/std/sched"
	"github.com/named-data/ndnode/std/types/optional"
)

// PitCheckInterval is the period of the PIT expiry check.
const PitCheckInterval = 100 * time.Millisecond

// Node is a single-threaded NDN client node.
//
// The tables are owned by the goroutine running Run or Poll. Callbacks run on
// that goroutine, and so must every call to the methods of Node except Post
// and Shutdown. Other goroutines hand work over with Post.
type Node struct {
	face  ndn.Face
	timer ndn.Timer
	sched *sched.Scheduler

	pit       pit
	rpt       rpt
	lastPitId uint64
	lastRptId uint64

	// hubId is written once, by the first successful fetch.
	hubId      []byte
	hubState   HubState
	hubFetches int

	metrics *Metrics

	// StrictPrefixMatch only dispatches an Interest to registered prefixes
	// that are a prefix of its name.
	StrictPrefixMatch bool

	// inQueue is the incoming packet queue.
	// The face will be blocked when the queue is full.
	inQueue chan []byte
	// taskQueue is the task queue for the loop goroutine.
	taskQueue chan func()
	// close is closed to signal the loop to stop.
	close     chan struct{}
	closeOnce sync.Once
	// running is set while Run or Poll executes.
	running atomic.Bool
	stopped atomic.Bool
}

// loopTimer hands every firing of the wrapped timer to the node's loop.
type loopTimer struct {
	ndn.Timer
	post func(func())
}

func (t loopTimer) Schedule(d time.Duration, f func()) func() error {
	return t.Timer.Schedule(d, func() { t.post(f) })
}

// NewNode creates a node sending through face and running on timer.
// The face is opened on first use.
func NewNode(face ndn.Face, timer ndn.Timer) *Node {
	if face == nil || timer == nil {
		return nil
	}
	n := &Node{
		face:      face,
		metrics:   NewMetrics(),
		inQueue:   make(chan []byte, 256),
		taskQueue: make(chan func(), 512),
		close:     make(chan struct{}),
	}
	n.timer = loopTimer{Timer: timer, post: n.Post}
	n.sched = sched.NewScheduler(n.timer)
	n.sched.Schedule(PitCheckInterval, n.checkPitExpire)
	return n
}

func (n *Node) String() string {
	return "node"
}

// Face returns the face of the node.
func (n *Node) Face() ndn.Face {
	return n.face
}

// Timer returns the timer of the node. Its callbacks run on the loop.
func (n *Node) Timer() ndn.Timer {
	return n.timer
}

// Scheduler returns the scheduler driving the node.
func (n *Node) Scheduler() *sched.Scheduler {
	return n.sched
}

// Metrics returns the event counters of the node.
func (n *Node) Metrics() *Metrics {
	return n.metrics
}

// PendingInterestCount returns the number of Interests waiting for Data.
func (n *Node) PendingInterestCount() int {
	return n.pit.len()
}

// RegisteredPrefixCount returns the number of prefixes receiving Interests.
func (n *Node) RegisteredPrefixCount() int {
	return n.rpt.len()
}

// IsRunning returns true if Run or Poll is executing.
func (n *Node) IsRunning() bool {
	return n.running.Load()
}

// Post runs f on the loop goroutine. It can be called from any goroutine.
// Tasks posted after Shutdown may never run.
func (n *Node) Post(f func()) {
	select {
	case n.taskQueue <- f:
	case <-n.close:
	}
}

// Run processes packets and tasks until Shutdown.
//
// A panic raised by a callback stops Run, which then returns an error wrapping
// ndn.ErrCallbackPanic. The tables stay consistent and Run may be called again.
func (n *Node) Run() (err error) {
	if n.stopped.Load() {
		return ndn.ErrNodeStopped
	}
	if !n.running.CompareAndSwap(false, true) {
		return fmt.Errorf("node is already running")
	}
	defer n.running.Store(false)
	defer n.recoverPanic(&err)

	for {
		select {
		case frame := <-n.inQueue:
			n.onPacket(frame)
		case task := <-n.taskQueue:
			task()
		case <-n.close:
			n.sched.CancelAll()
			return nil
		}
	}
}

// Poll processes the packets and tasks that are already queued and returns
// without waiting. Panics are reported as in Run.
func (n *Node) Poll() (err error) {
	if n.stopped.Load() {
		n.sched.CancelAll()
		return ndn.ErrNodeStopped
	}
	if !n.running.CompareAndSwap(false, true) {
		return fmt.Errorf("node is already running")
	}
	defer n.running.Store(false)
	defer n.recoverPanic(&err)

	for {
		select {
		case frame := <-n.inQueue:
			n.onPacket(frame)
		case task := <-n.taskQueue:
			task()
		default:
			return nil
		}
	}
}

func (n *Node) recoverPanic(err *error) {
	if r := recover(); r != nil {
		log.Error(n, "Callback panicked", "panic", r)
		*err = fmt.Errorf("%w: %v", ndn.ErrCallbackPanic, r)
	}
}

// Shutdown closes the face and stops the loop.
// Pending Interests and registered prefixes are left in place.
func (n *Node) Shutdown() {
	n.closeOnce.Do(func() {
		n.stopped.Store(true)
		if n.face.IsRunning() {
			if err := n.face.Close(); err != nil {
				log.Warn(n, "Failed to close face", "err", err)
			}
		}
		close(n.close)
	})
}

// connect opens the face if it is not up yet.
func (n *Node) connect() error {
	if n.stopped.Load() {
		return ndn.ErrNodeStopped
	}
	if n.face.IsRunning() {
		return nil
	}

	n.face.OnPacket(func(frame []byte) {
		// Copy received buffer from face so face can reuse it
		frameCopy := make([]byte, len(frame))
		copy(frameCopy, frame)
		select {
		case n.inQueue <- frameCopy:
		case <-n.close:
		}
	})
	n.face.OnError(func(err error) {
		log.Error(n, "Error on face", "err", err, "face", n.face)
	})

	if err := n.face.Open(); err != nil {
		return err
	}
	log.Debug(n, "Face connected", "face", n.face)
	return nil
}

func (n *Node) send(wire enc.Wire) error {
	if err := n.connect(); err != nil {
		return err
	}
	return n.face.Send(wire)
}

// SendInterest sends an Interest and waits for a matching Data.
// Exactly one of onData and onTimeout is called, unless the Interest is
// cancelled. Either may be nil. The returned id is never reused.
func (n *Node) SendInterest(interest *ndn.Interest, onData ndn.OnData, onTimeout ndn.OnTimeout) (uint64, error) {
	if interest == nil {
		return 0, ndn.ErrInvalidValue{Item: "interest", Value: nil}
	}

	snapshot := interest.Clone()
	if !snapshot.Nonce.IsSet() {
		snapshot.Nonce = optional.Some(nonce32(n.timer.Nonce()))
	}
	lifetime := snapshot.Lifetime.GetOr(ndn.DefaultInterestLifetime)

	n.lastPitId++
	entry := &pitEntry{
		id:        n.lastPitId,
		interest:  snapshot,
		onData:    onData,
		onTimeout: onTimeout,
		deadline:  n.timer.Now().Add(lifetime),
	}
	n.pit.insert(entry)

	if err := n.send(spec.EncodeInterest(snapshot)); err != nil {
		n.pit.remove(entry.id)
		log.Error(n, "Failed to send interest", "err", err, "name", snapshot.Name)
		return 0, err
	}

	n.metrics.InterestsSent.Inc()
	log.Trace(n, "Interest sent", "name", snapshot.Name, "id", entry.id)
	return entry.id, nil
}

// CancelInterest drops a pending Interest without calling its callbacks.
func (n *Node) CancelInterest(id uint64) {
	if n.pit.remove(id) > 0 {
		log.Trace(n, "Interest cancelled", "id", id)
	}
}

// PutData sends a Data packet through the face.
func (n *Node) PutData(data *ndn.Data) error {
	if data == nil {
		return ndn.ErrInvalidValue{Item: "data", Value: nil}
	}
	if err := n.send(spec.EncodeData(data)); err != nil {
		log.Error(n, "Failed to send data", "err", err, "name", data.Name)
		return err
	}
	log.Trace(n, "Data sent", "name", data.Name)
	return nil
}

func (n *Node) onPacket(frame []byte) {
	if log.HasTrace() {
		log.Trace(n, "Received packet bytes", "wire", hex.EncodeToString(frame))
	}

	pkt, err := spec.ReadPacket(frame)
	if err != nil {
		// Recoverable error. Should continue.
		n.metrics.DecodeErrors.Inc()
		log.Error(n, "Failed to parse packet", "err", err)
		return
	}

	if pkt.Interest != nil {
		n.onInterest(pkt.Interest)
	} else {
		n.onData(pkt.Data)
	}
}

func (n *Node) onInterest(interest *ndn.Interest) {
	entry := n.rpt.lookup(interest.Name, n.StrictPrefixMatch)
	if entry == nil {
		n.metrics.InterestsUnhandled.Inc()
		log.Debug(n, "No handler for interest - DROP", "name", interest.Name)
		return
	}

	n.metrics.InterestsDispatched.Inc()
	log.Trace(n, "Interest received", "name", interest.Name, "prefix", entry.prefix)
	entry.onInterest(entry.prefix, interest, n.face, entry.id)
}

func (n *Node) onData(data *ndn.Data) {
	entry := n.pit.matchAndConsume(data.Name)
	if entry == nil {
		n.metrics.DataUnmatched.Inc()
		log.Debug(n, "Received data for an unknown interest - DROP", "name", data.Name)
		return
	}

	n.metrics.DataMatched.Inc()
	log.Trace(n, "Data received", "name", data.Name, "id", entry.id)
	if entry.onData != nil {
		entry.onData(entry.interest, data)
	}
}

func (n *Node) checkPitExpire() {
	defer n.sched.Schedule(PitCheckInterval, n.checkPitExpire)

	n.pit.expire(n.timer.Now, func(entry *pitEntry) {
		n.metrics.InterestTimeouts.Inc()
		log.Trace(n, "Interest timed out", "name", entry.interest.Name, "id", entry.id)
	})
}

func logDiscardedPanic(entry *pitEntry, r any) {
	log.Debug(nil, "Timeout callback panicked - IGNORE", "name", entry.interest.Name, "panic", r)
}

func nonce32(b []byte) uint32 {
	buf := make([]byte, 4)
	copy(buf, b)
	return binary.BigEndian.Uint32(buf)
}
