package spec_2013_test

import (
	"math"
	"testing"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/ndn"
	spec "github.com/named-data/ndnode/std/ndn/spec_2013"
	"github.com/named-data/ndnode/std/types/optional"
	tu "github.com/named-data/ndnode/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestEncodeInterestBasic(t *testing.T) {
	tu.SetT(t)

	interest := &ndn.Interest{
		Name:     tu.NoErr(enc.NameFromStr("/a")),
		Lifetime: optional.Some(4000 * time.Millisecond),
	}
	wire := spec.EncodeInterest(interest).Join()
	require.Equal(t, []byte{
		0x05, 0x09,
		0x07, 0x03, 0x08, 0x01, 'a',
		0x0c, 0x02, 0x0f, 0xa0,
	}, wire)

	pkt := tu.NoErr(spec.ReadPacket(wire))
	require.Nil(t, pkt.Data)
	require.Equal(t, "/a", pkt.Interest.Name.String())
	require.Equal(t, 4000*time.Millisecond, pkt.Interest.Lifetime.Unwrap())
	require.False(t, pkt.Interest.Nonce.IsSet())
}

func TestInterestAllFields(t *testing.T) {
	tu.SetT(t)

	interest := &ndn.Interest{
		Name:                tu.NoErr(enc.NameFromStr("/ndnx/selfreg")),
		MinSuffixComponents: optional.Some[uint64](1),
		MaxSuffixComponents: optional.Some[uint64](3),
		ChildSelector:       optional.Some[uint64](1),
		MustBeFresh:         true,
		Nonce:               optional.Some[uint32](0x01020304),
		Scope:               optional.Some[uint64](1),
	}
	pkt := tu.NoErr(spec.ReadPacket(spec.EncodeInterest(interest).Join()))
	ret := pkt.Interest
	require.True(t, ret.Name.Equal(interest.Name))
	require.Equal(t, uint64(1), ret.MinSuffixComponents.Unwrap())
	require.Equal(t, uint64(3), ret.MaxSuffixComponents.Unwrap())
	require.Equal(t, uint64(1), ret.ChildSelector.Unwrap())
	require.True(t, ret.MustBeFresh)
	require.Equal(t, uint32(0x01020304), ret.Nonce.Unwrap())
	require.Equal(t, uint64(1), ret.Scope.Unwrap())
	require.False(t, ret.Lifetime.IsSet())
}

func TestDataWithSignature(t *testing.T) {
	tu.SetT(t)

	data := &ndn.Data{
		Name:        tu.NoErr(enc.NameFromStr("/hub/KEY")),
		ContentType: optional.Some(ndn.ContentTypeKey),
		Freshness:   optional.Some(10 * time.Second),
		Content:     []byte("public key"),
		Signature: ndn.Signature{
			Type:       ndn.SignatureSha256WithRsa,
			KeyLocator: tu.NoErr(enc.NameFromStr("/hub/KEY")),
			Value:      []byte{1, 2, 3},
		},
	}
	pkt := tu.NoErr(spec.ReadPacket(spec.EncodeData(data).Join()))
	require.Nil(t, pkt.Interest)
	ret := pkt.Data
	require.Equal(t, "/hub/KEY", ret.Name.String())
	require.Equal(t, ndn.ContentTypeKey, ret.ContentType.Unwrap())
	require.Equal(t, 10*time.Second, ret.Freshness.Unwrap())
	require.Equal(t, []byte("public key"), []byte(ret.Content))
	require.Equal(t, ndn.SignatureSha256WithRsa, ret.Signature.Type)
	require.Equal(t, "/hub/KEY", ret.Signature.KeyLocator.String())
	require.Equal(t, []byte{1, 2, 3}, []byte(ret.Signature.Value))
}

func TestUnsignedData(t *testing.T) {
	tu.SetT(t)

	data := &ndn.Data{
		Name:      tu.NoErr(enc.NameFromStr("/a/b/c")),
		Signature: ndn.Signature{Type: ndn.SignatureNone},
	}
	wire := spec.EncodeData(data).Join()
	require.Equal(t, []byte{
		0x06, 0x0f,
		0x07, 0x09, 0x08, 0x01, 'a', 0x08, 0x01, 'b', 0x08, 0x01, 'c',
		0x14, 0x00,
		0x15, 0x00,
	}, wire)
	ret := tu.NoErr(spec.ReadPacket(wire)).Data
	require.Equal(t, ndn.SignatureNone, ret.Signature.Type)
	require.Equal(t, 0, len(ret.Content))
}

func TestPlaceholderSignature(t *testing.T) {
	tu.SetT(t)

	data := &ndn.Data{
		Name:      enc.Name{},
		Content:   []byte{0xab},
		Signature: spec.PlaceholderSignature(),
	}
	wire := spec.EncodeData(data).Join()
	// SignatureInfo(Sha256WithRsa) followed by an empty SignatureValue
	require.Equal(t, []byte{0x16, 0x03, 0x1b, 0x01, 0x01, 0x17, 0x00}, wire[len(wire)-7:])

	ret := tu.NoErr(spec.ReadPacket(wire)).Data
	require.Equal(t, 0, len(ret.Name))
	require.Equal(t, ndn.SignatureSha256WithRsa, ret.Signature.Type)
	require.Equal(t, 0, len(ret.Signature.Value))
}

func TestReadPacketErrors(t *testing.T) {
	tu.SetT(t)

	// not a packet type
	require.Equal(t, ndn.ErrWrongType, tu.Err(spec.ReadPacket([]byte{0x07, 0x00})))
	// truncated
	tu.Err(spec.ReadPacket([]byte{0x05, 0x05, 0x07}))
	// trailing bytes
	tu.Err(spec.ReadPacket([]byte{0x05, 0x02, 0x07, 0x00, 0x00}))
	// missing name
	tu.Err(spec.ReadPacket([]byte{0x05, 0x03, 0x0b, 0x01, 0x01}))

	// unknown non-critical field is skipped
	pkt := tu.NoErr(spec.ReadPacket([]byte{0x05, 0x05, 0x07, 0x00, 0xfc, 0x01, 0x00}))
	require.Equal(t, 0, len(pkt.Interest.Name))

	// unknown critical field fails
	err := tu.Err(spec.ReadPacket([]byte{0x05, 0x05, 0x07, 0x00, 0xfb, 0x01, 0x00}))
	require.Equal(t, enc.ErrUnrecognizedField{TypeNum: 0xfb}, err)
}

func TestMillisecondsSaturate(t *testing.T) {
	tu.SetT(t)

	pkt := tu.NoErr(spec.ReadPacket([]byte{
		0x05, 0x0f,
		0x07, 0x03, 0x08, 0x01, 'a',
		0x0c, 0x08, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}))
	require.Equal(t, time.Duration(math.MaxInt64), pkt.Interest.Lifetime.Unwrap())

	pkt = tu.NoErr(spec.ReadPacket([]byte{
		0x06, 0x13,
		0x07, 0x03, 0x08, 0x01, 'a',
		0x14, 0x0a, 0x19, 0x08, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x15, 0x00,
	}))
	require.Equal(t, time.Duration(math.MaxInt64), pkt.Data.Freshness.Unwrap())
}

func TestReadPacketHugeLength(t *testing.T) {
	tu.SetT(t)

	err := tu.Err(spec.ReadPacket([]byte{0x06, 0xff, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}))
	require.Equal(t, enc.ErrBufferOverflow, err)
	tu.Err(spec.ReadPacket([]byte{0x06, 0x0a, 0x07, 0xff, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}))
}
