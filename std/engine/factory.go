package engine

import (
	"fmt"
	"net/url"

	"github.com/named-data/ndnode/std/engine/face"
	"github.com/named-data/ndnode/std/engine/node"
	"github.com/named-data/ndnode/std/ndn"
	"github.com/named-data/ndnode/std/sched"
)

// NewFace creates a face from a transport URI.
//
//	unix:///run/nfd/nfd.sock
//	tcp://host:6363 (also tcp4, tcp6)
//	ws://host:9696, wss://host/ws
//	https://host:443/ndn (HTTP/3 WebTransport)
func NewFace(transportUri string) (ndn.Face, error) {
	uri, err := url.Parse(transportUri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transport URI %s: %w", transportUri, err)
	}

	switch uri.Scheme {
	case "unix":
		return face.NewStreamFace("unix", uri.Path, true), nil
	case "tcp", "tcp4", "tcp6":
		if uri.Host == "" {
			return nil, ndn.ErrInvalidValue{Item: "transport", Value: transportUri}
		}
		return face.NewStreamFace(uri.Scheme, uri.Host, false), nil
	case "ws", "wss":
		return face.NewWebSocketFace(uri.String(), false), nil
	case "https":
		return face.NewHttp3Face(uri.String(), nil), nil
	default:
		return nil, ndn.ErrNotSupported{Item: "transport " + transportUri}
	}
}

// NewDefaultFace creates a face from the client configuration.
func NewDefaultFace() (ndn.Face, error) {
	return NewFace(GetClientConfig().TransportUri)
}

// NewNode creates a node on the face driven by the wall clock.
func NewNode(face ndn.Face) *node.Node {
	return node.NewNode(face, sched.NewTimer())
}
