package spec_2013

import (
	"math"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
)

// TLV type numbers of NDN-TLV 0.1.
const (
	TypeInterest enc.TLNum = 0x05
	TypeData     enc.TLNum = 0x06

	TypeSelectors                 enc.TLNum = 0x09
	TypeNonce                     enc.TLNum = 0x0a
	TypeScope                     enc.TLNum = 0x0b
	TypeInterestLifetime          enc.TLNum = 0x0c
	TypeMinSuffixComponents       enc.TLNum = 0x0d
	TypeMaxSuffixComponents       enc.TLNum = 0x0e
	TypePublisherPublicKeyLocator enc.TLNum = 0x0f
	TypeExclude                   enc.TLNum = 0x10
	TypeChildSelector             enc.TLNum = 0x11
	TypeMustBeFresh               enc.TLNum = 0x12

	TypeMetaInfo        enc.TLNum = 0x14
	TypeContent         enc.TLNum = 0x15
	TypeSignatureInfo   enc.TLNum = 0x16
	TypeSignatureValue  enc.TLNum = 0x17
	TypeContentType     enc.TLNum = 0x18
	TypeFreshnessPeriod enc.TLNum = 0x19
	TypeSignatureType   enc.TLNum = 0x1b
	TypeKeyLocator      enc.TLNum = 0x1c

	TypeForwardingEntry enc.TLNum = 0x81
	TypeAction          enc.TLNum = 0x83
	TypeFaceID          enc.TLNum = 0x84
	TypeForwardingFlags enc.TLNum = 0x8a
)

// encoder accumulates TLV elements into a single buffer.
type encoder struct {
	buf []byte
}

func (e *encoder) block(typ enc.TLNum, val []byte) {
	l := len(e.buf)
	e.buf = append(e.buf, make([]byte, enc.TLVLength(typ, len(val)))...)
	p := l + enc.EncodeTLHeader(e.buf[l:], typ, len(val))
	copy(e.buf[p:], val)
}

func (e *encoder) nat(typ enc.TLNum, v uint64) {
	e.block(typ, enc.Nat(v).Bytes())
}

func (e *encoder) name(n enc.Name) {
	e.buf = append(e.buf, n.Bytes()...)
}

// nested encodes the elements written by f as the value of a typ element.
func (e *encoder) nested(typ enc.TLNum, f func(*encoder)) {
	inner := encoder{}
	f(&inner)
	e.block(typ, inner.buf)
}

func (e *encoder) bytes() []byte {
	if e.buf == nil {
		return []byte{}
	}
	return e.buf
}

// fields walks the elements of a TLV value. For each element, known reports
// whether the type was consumed. Unknown critical elements fail the walk.
func fields(val enc.Buffer, known func(typ enc.TLNum, val enc.Buffer) (bool, error)) error {
	r := enc.NewBufferView(val)
	for !r.IsEOF() {
		typ, v, _, err := r.ReadTLV()
		if err != nil {
			return err
		}
		ok, err := known(typ, v)
		if err != nil {
			return err
		}
		if !ok && typ.IsCritical() {
			return enc.ErrUnrecognizedField{TypeNum: typ}
		}
	}
	return nil
}

func readNat(val enc.Buffer) (uint64, error) {
	v, err := enc.ParseNat(val)
	return uint64(v), err
}

// readMillis reads a millisecond count, saturating at the largest Duration.
func readMillis(val enc.Buffer) (time.Duration, error) {
	x, err := readNat(val)
	if err != nil {
		return 0, err
	}
	if x > math.MaxInt64/uint64(time.Millisecond) {
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(x) * time.Millisecond, nil
}
