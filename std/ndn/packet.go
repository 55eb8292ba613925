package ndn

import (
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/types/optional"
)

// Interest is a named request.
//
// Only Name and Lifetime are interpreted by the node. The selectors, Nonce
// and Scope are carried to the wire unchanged.
type Interest struct {
	Name     enc.Name
	Lifetime optional.Optional[time.Duration]

	MinSuffixComponents optional.Optional[uint64]
	MaxSuffixComponents optional.Optional[uint64]
	ChildSelector       optional.Optional[uint64]
	MustBeFresh         bool

	Nonce optional.Optional[uint32]
	Scope optional.Optional[uint64]
}

// MatchesName returns true if a Data with the given name can satisfy the Interest.
func (i *Interest) MatchesName(name enc.Name) bool {
	return i.Name.IsPrefix(name)
}

// Clone returns a deep copy of the Interest.
func (i *Interest) Clone() *Interest {
	ret := *i
	ret.Name = i.Name.Clone()
	return &ret
}

// Signature is an opaque signature. The node never verifies it.
type Signature struct {
	Type       SigType
	KeyLocator enc.Name
	Value      []byte
}

// Data is a named response.
type Data struct {
	Name        enc.Name
	ContentType optional.Optional[ContentType]
	Freshness   optional.Optional[time.Duration]
	Content     []byte
	Signature   Signature
}

// ForwardingFlags is the flag set of a forwarding entry.
type ForwardingFlags uint64

const (
	ForwardingFlagActive       ForwardingFlags = 1
	ForwardingFlagChildInherit ForwardingFlags = 2
	ForwardingFlagAdvertise    ForwardingFlags = 4
	ForwardingFlagLast         ForwardingFlags = 8
	ForwardingFlagCapture      ForwardingFlags = 16
	ForwardingFlagLocal        ForwardingFlags = 32
	ForwardingFlagTap          ForwardingFlags = 64
	ForwardingFlagCaptureOk    ForwardingFlags = 128
)

// DefaultForwardingFlags is used when registering without explicit flags.
const DefaultForwardingFlags = ForwardingFlagActive | ForwardingFlagChildInherit

func (f ForwardingFlags) Has(flag ForwardingFlags) bool {
	return f&flag == flag
}

// ForwardingEntry is the registration record sent to the hub.
type ForwardingEntry struct {
	Action          string
	Prefix          enc.Name
	FaceId          optional.Optional[uint64]
	Flags           ForwardingFlags
	FreshnessPeriod optional.Optional[time.Duration]
}
