package face

import (
	"fmt"
	"io"
	"net"

	enc "github.com/named-data/ndnode/std/encoding"
	ndn_io "github.com/named-data/ndnode/std/utils/io"
)

// StreamFace is a face that uses a stream connection.
type StreamFace struct {
	baseFace
	network string
	addr    string
	conn    net.Conn
}

func NewStreamFace(network string, addr string, local bool) *StreamFace {
	return &StreamFace{
		baseFace: newBaseFace(local),
		network:  network,
		addr:     addr,
	}
}

func (f *StreamFace) String() string {
	return fmt.Sprintf("stream-face (%s://%s)", f.network, f.addr)
}

func (f *StreamFace) Open() error {
	if err := f.checkOpen(); err != nil {
		return err
	}

	c, err := net.Dial(f.network, f.addr)
	if err != nil {
		return err
	}

	f.conn = c
	f.setStateUp()
	go f.receive(c)

	return nil
}

func (f *StreamFace) Close() error {
	if f.setStateClosed() && f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

func (f *StreamFace) Send(pkt enc.Wire) error {
	if !f.IsRunning() {
		return errFaceNotRunning
	}

	f.sendMut.Lock()
	defer f.sendMut.Unlock()

	_, err := f.conn.Write(pkt.Join())
	return err
}

func (f *StreamFace) receive(conn net.Conn) {
	err := ndn_io.ReadTlvStream(conn, func(b []byte) bool {
		f.onPkt(b)
		return f.IsRunning()
	}, nil)

	if f.IsRunning() {
		conn.Close()
		f.setStateDown()
		if err == nil {
			err = io.EOF
		}
		f.onError(err)
	}
}
