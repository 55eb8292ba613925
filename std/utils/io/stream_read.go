// Package io reads NDN packets off byte streams.
package io

import (
	"errors"
	"fmt"
	"io"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/ndn"
)

// ReadTlvStream splits a byte stream into TLV frames.
// onFrame is called for every complete frame and the loop stops when it
// returns false. The frame is only valid during the call. Read errors for
// which ignoreError returns true are skipped. A clean EOF returns nil.
func ReadTlvStream(
	reader io.Reader,
	onFrame func([]byte) bool,
	ignoreError func(error) bool,
) error {
	buf := make([]byte, ndn.MaxNDNPacketSize*8)
	end := 0   // end of received bytes
	start := 0 // start of the next frame

	for {
		// Keep room for at least one full packet
		if len(buf)-end < ndn.MaxNDNPacketSize {
			copy(buf, buf[start:end])
			end -= start
			start = 0
		}

		n, err := reader.Read(buf[end:])
		end += n
		if err != nil {
			if ignoreError != nil && ignoreError(err) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		for {
			size, ok := frameSize(buf[start:end])
			if ok && size > ndn.MaxNDNPacketSize {
				return fmt.Errorf("received too much data without valid TLV block")
			}
			if !ok || end-start < size {
				break
			}
			if !onFrame(buf[start : start+size]) {
				return nil
			}
			start += size
		}
	}
}

// frameSize returns the size of the TLV element at the head of b, if its
// header is complete.
func frameSize(b []byte) (int, bool) {
	r := enc.NewBufferView(b)
	typ, err := r.ReadTLNum()
	if err != nil {
		return 0, false
	}
	l, err := r.ReadTLNum()
	if err != nil {
		return 0, false
	}
	if l > ndn.MaxNDNPacketSize {
		return int(ndn.MaxNDNPacketSize) + 1, true
	}
	return enc.TLVLength(typ, int(l)), true
}
