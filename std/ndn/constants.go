package ndn

import "time"

// MaxNDNPacketSize is the maximum allowed NDN packet size
const MaxNDNPacketSize = 8800

// DefaultInterestLifetime applies to Interests that do not carry a lifetime.
const DefaultInterestLifetime = 4000 * time.Millisecond

// ContentType represents the type of Data content in MetaInfo.
type ContentType uint64

const (
	ContentTypeBlob ContentType = 0
	ContentTypeLink ContentType = 1
	ContentTypeKey  ContentType = 2
	ContentTypeNack ContentType = 3
)

// SigType represents the type of signature.
type SigType int

const (
	SignatureNone          SigType = -1
	SignatureDigestSha256  SigType = 0
	SignatureSha256WithRsa SigType = 1
)

func (t SigType) String() string {
	switch t {
	case SignatureNone:
		return "None"
	case SignatureDigestSha256:
		return "DigestSha256"
	case SignatureSha256WithRsa:
		return "Sha256WithRsa"
	default:
		return "Unknown"
	}
}
