package face

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/ndn"
	"github.com/quic-go/quic-go"
	"github.com/quic-go/webtransport-go"
)

// Http3Face is a face over an HTTP/3 WebTransport session.
// Each packet is carried in one datagram.
type Http3Face struct {
	baseFace
	url     string
	tlsConf *tls.Config
	session *webtransport.Session

	// DialTimeout bounds session establishment.
	DialTimeout time.Duration
}

func NewHttp3Face(url string, tlsConf *tls.Config) *Http3Face {
	return &Http3Face{
		baseFace:    newBaseFace(false),
		url:         url,
		tlsConf:     tlsConf,
		DialTimeout: 10 * time.Second,
	}
}

func (f *Http3Face) String() string {
	return fmt.Sprintf("http3-face (%s)", f.url)
}

func (f *Http3Face) Open() error {
	if err := f.checkOpen(); err != nil {
		return err
	}

	d := webtransport.Dialer{
		TLSClientConfig: f.tlsConf,
		QUICConfig: &quic.Config{
			MaxIdleTimeout:          60 * time.Second,
			KeepAlivePeriod:         30 * time.Second,
			EnableDatagrams:         true,
			DisablePathMTUDiscovery: true,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.DialTimeout)
	defer cancel()
	_, session, err := d.Dial(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("webtransport dial %s: %w", f.url, err)
	}

	f.session = session
	f.setStateUp()
	go f.receive(session)

	return nil
}

func (f *Http3Face) Close() error {
	if !f.setStateClosed() {
		return errFaceNotRunning
	}
	return f.session.CloseWithError(0, "")
}

func (f *Http3Face) Send(pkt enc.Wire) error {
	if !f.IsRunning() {
		return errFaceNotRunning
	}
	if pkt.Length() > ndn.MaxNDNPacketSize {
		return ndn.ErrInvalidValue{Item: "packet size", Value: pkt.Length()}
	}
	return f.session.SendDatagram(pkt.Join())
}

func (f *Http3Face) receive(session *webtransport.Session) {
	for {
		message, err := session.ReceiveDatagram(session.Context())
		if err != nil {
			if f.IsRunning() {
				f.setStateDown()
				f.onError(err)
			}
			return
		}
		if len(message) > ndn.MaxNDNPacketSize {
			continue
		}
		f.onPkt(message)
	}
}
