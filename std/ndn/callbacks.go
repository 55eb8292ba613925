package ndn

import enc "github.com/named-data/ndnode/std/encoding"

// OnData is called with the expressed Interest and the Data that satisfied it.
type OnData func(interest *Interest, data *Data)

// OnTimeout is called with the expressed Interest when it times out.
// A panic raised by this callback is discarded.
type OnTimeout func(interest *Interest)

// OnInterest is called for an inbound Interest routed to a registered prefix.
// The face can be used to reply with a Data packet.
type OnInterest func(prefix enc.Name, interest *Interest, face Face, registeredPrefixId uint64)

// OnRegisterFailed is called with the prefix whose registration failed.
type OnRegisterFailed func(prefix enc.Name)
