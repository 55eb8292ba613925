package ndn

import enc "github.com/named-data/ndnode/std/encoding"

// Face is the transport a node sends and receives packets through.
type Face interface {
	// String returns the log identifier.
	String() string
	// IsRunning returns true if the face is connected.
	IsRunning() bool
	// IsLocal returns true if the face is local.
	IsLocal() bool
	// OnPacket sets the callback for receiving packets.
	// The frame is only valid during the callback.
	// This function should only be called by node implementations.
	OnPacket(onPkt func(frame []byte))
	// OnError sets the callback for fatal errors.
	// This function should only be called by node implementations.
	OnError(onError func(err error))

	// Open starts the face and may block until it is up.
	Open() error
	// Close stops the face.
	Close() error
	// Send sends a packet frame to the face.
	Send(pkt enc.Wire) error

	// OnUp sets the callback for the face going up.
	OnUp(onUp func()) (cancel func())
	// OnDown sets the callback for the face going down.
	// The callback will not be called when the face is closed.
	OnDown(onDown func()) (cancel func())
}
