package face

import (
	"errors"
	"sync"

	enc "github.com/named-data/ndnode/std/encoding"
)

// DummyFace is an in-memory face for tests. Sent frames are queued for
// Consume, and FeedPacket delivers a frame as if it was received.
type DummyFace struct {
	baseFace
	lock     sync.Mutex
	sendPkts []enc.Buffer
	opens    int

	// SendErr, if set, is returned by Send.
	SendErr error
	// OpenErr, if set, is returned by Open.
	OpenErr error
}

func NewDummyFace() *DummyFace {
	return &DummyFace{
		baseFace: newBaseFace(true),
	}
}

func (f *DummyFace) String() string {
	return "dummy-face"
}

func (f *DummyFace) Open() error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	if f.OpenErr != nil {
		return f.OpenErr
	}
	f.lock.Lock()
	f.opens++
	f.lock.Unlock()
	f.setStateUp()
	return nil
}

func (f *DummyFace) Close() error {
	if !f.setStateClosed() {
		return errFaceNotRunning
	}
	return nil
}

func (f *DummyFace) Send(pkt enc.Wire) error {
	if !f.IsRunning() {
		return errFaceNotRunning
	}
	if f.SendErr != nil {
		return f.SendErr
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.sendPkts = append(f.sendPkts, append(enc.Buffer{}, pkt.Join()...))
	return nil
}

// FeedPacket feeds a packet for the node to consume.
func (f *DummyFace) FeedPacket(pkt enc.Buffer) error {
	if !f.IsRunning() {
		return errFaceNotRunning
	}
	f.onPkt(pkt)
	return nil
}

// Consume pops the oldest packet sent through the face.
func (f *DummyFace) Consume() (enc.Buffer, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if len(f.sendPkts) == 0 {
		return nil, errors.New("no packet to consume")
	}
	pkt := f.sendPkts[0]
	f.sendPkts = f.sendPkts[1:]
	return pkt, nil
}

// Sent returns the number of packets waiting to be consumed.
func (f *DummyFace) Sent() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.sendPkts)
}

// Opens returns how many times the face was opened.
func (f *DummyFace) Opens() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.opens
}

// Fail brings the face down as a broken connection would.
func (f *DummyFace) Fail(err error) {
	if f.IsRunning() {
		f.setStateDown()
		f.onError(err)
	}
}
