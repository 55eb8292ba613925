package face

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	errFaceRunning     = errors.New("face is already running")
	errFaceNotRunning  = errors.New("face is not running")
	errCallbacksNotSet = errors.New("face callbacks are not set")
)

// baseFace holds the state shared by face implementations.
type baseFace struct {
	running atomic.Bool
	local   bool
	onPkt   func(frame []byte)
	onError func(err error)
	sendMut sync.Mutex

	cbMut    sync.Mutex
	onUp     map[int]func()
	onDown   map[int]func()
	onUpHndl int
	onDnHndl int
}

func newBaseFace(local bool) baseFace {
	return baseFace{
		local:  local,
		onUp:   make(map[int]func()),
		onDown: make(map[int]func()),
	}
}

func (f *baseFace) IsRunning() bool {
	return f.running.Load()
}

func (f *baseFace) IsLocal() bool {
	return f.local
}

func (f *baseFace) OnPacket(onPkt func(frame []byte)) {
	f.onPkt = onPkt
}

func (f *baseFace) OnError(onError func(err error)) {
	f.onError = onError
}

func (f *baseFace) OnUp(onUp func()) (cancel func()) {
	f.cbMut.Lock()
	defer f.cbMut.Unlock()
	hndl := f.onUpHndl
	f.onUp[hndl] = onUp
	f.onUpHndl++
	return func() {
		f.cbMut.Lock()
		defer f.cbMut.Unlock()
		delete(f.onUp, hndl)
	}
}

func (f *baseFace) OnDown(onDown func()) (cancel func()) {
	f.cbMut.Lock()
	defer f.cbMut.Unlock()
	hndl := f.onDnHndl
	f.onDown[hndl] = onDown
	f.onDnHndl++
	return func() {
		f.cbMut.Lock()
		defer f.cbMut.Unlock()
		delete(f.onDown, hndl)
	}
}

func (f *baseFace) checkOpen() error {
	if f.IsRunning() {
		return errFaceRunning
	}
	if f.onError == nil || f.onPkt == nil {
		return errCallbacksNotSet
	}
	return nil
}

func (f *baseFace) callbacks(m map[int]func()) []func() {
	f.cbMut.Lock()
	defer f.cbMut.Unlock()
	ret := make([]func(), 0, len(m))
	for _, cb := range m {
		ret = append(ret, cb)
	}
	return ret
}

// setStateDown sets the face to down state, and makes the down
// callback if the face was previously up.
func (f *baseFace) setStateDown() {
	if f.running.Swap(false) {
		for _, cb := range f.callbacks(f.onDown) {
			cb()
		}
	}
}

// setStateUp sets the face to up state, and makes the up
// callback if the face was previously down.
func (f *baseFace) setStateUp() {
	if !f.running.Swap(true) {
		for _, cb := range f.callbacks(f.onUp) {
			cb()
		}
	}
}

// setStateClosed sets the face to closed state without
// making the onDown callback. Returns if the face was running.
func (f *baseFace) setStateClosed() bool {
	return f.running.Swap(false)
}
