package face

import (
	"fmt"

	"github.com/gorilla/websocket"
	enc "github.com/named-data/ndnode/std/encoding"
)

// WebSocketFace is a face over a WebSocket connection, one packet per
// binary message.
type WebSocketFace struct {
	baseFace
	url  string
	conn *websocket.Conn
}

func NewWebSocketFace(url string, local bool) *WebSocketFace {
	return &WebSocketFace{
		baseFace: newBaseFace(local),
		url:      url,
	}
}

func (f *WebSocketFace) String() string {
	return fmt.Sprintf("websocket-face (%s)", f.url)
}

func (f *WebSocketFace) Open() error {
	if err := f.checkOpen(); err != nil {
		return err
	}

	c, _, err := websocket.DefaultDialer.Dial(f.url, nil)
	if err != nil {
		return err
	}

	f.conn = c
	f.setStateUp()
	go f.receive(c)

	return nil
}

func (f *WebSocketFace) Close() error {
	if !f.setStateClosed() {
		return errFaceNotRunning
	}
	return f.conn.Close()
}

func (f *WebSocketFace) Send(pkt enc.Wire) error {
	if !f.IsRunning() {
		return errFaceNotRunning
	}

	f.sendMut.Lock()
	defer f.sendMut.Unlock()
	return f.conn.WriteMessage(websocket.BinaryMessage, pkt.Join())
}

func (f *WebSocketFace) receive(conn *websocket.Conn) {
	for f.IsRunning() {
		messageType, pkt, err := conn.ReadMessage()
		if err != nil {
			if f.IsRunning() {
				conn.Close()
				f.setStateDown()
				f.onError(err)
			}
			return
		}

		if messageType != websocket.BinaryMessage {
			continue
		}
		f.onPkt(pkt)
	}
}
