package sched

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"time"

	"github.com/named-data/ndnode/std/log"
	"github.com/named-data/ndnode/std/ndn"
)

// Timer is the wall clock. Callbacks run on the runtime's timer goroutines.
type Timer struct{}

func NewTimer() ndn.Timer {
	return Timer{}
}

func (Timer) Schedule(d time.Duration, f func()) func() error {
	t := time.AfterFunc(d, f)
	return func() error {
		if t == nil {
			return fmt.Errorf("event has already been canceled")
		}
		t.Stop()
		t = nil
		return nil
	}
}

func (Timer) Now() time.Time {
	return time.Now()
}

// Nonce returns 4 random bytes, the size of an NDN-TLV 0.1 nonce.
func (Timer) Nonce() []byte {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// Nonces only need to be unique, not unpredictable.
		log.Warn(nil, "crypto/rand failed, using math/rand for nonce", "err", err)
		binary.BigEndian.PutUint32(buf, mrand.Uint32())
	}
	return buf
}
