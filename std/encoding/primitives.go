package encoding

import (
	"encoding/binary"
)

// TLNum is a TLV Type or Length number
type TLNum uint64

// Nat is a TLV natural number
type Nat uint64

// IsCritical reports whether an unrecognized field of this type must fail decoding.
// Types 0-31 are grandfathered as critical, others follow the odd-is-critical rule.
func (v TLNum) IsCritical() bool {
	return v <= 31 || v&1 == 1
}

// EncodingLength is the size of the VAR-NUMBER encoding of v.
func (v TLNum) EncodingLength() int {
	switch x := uint64(v); {
	case x <= 0xfc:
		return 1
	case x <= 0xffff:
		return 3
	case x <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// EncodeInto writes v as a VAR-NUMBER and returns the number of bytes written.
func (v TLNum) EncodeInto(buf Buffer) int {
	x := uint64(v)
	switch n := v.EncodingLength(); n {
	case 1:
		buf[0] = byte(x)
	case 3:
		buf[0] = 0xfd
		binary.BigEndian.PutUint16(buf[1:], uint16(x))
	case 5:
		buf[0] = 0xfe
		binary.BigEndian.PutUint32(buf[1:], uint32(x))
	default:
		buf[0] = 0xff
		binary.BigEndian.PutUint64(buf[1:], x)
	}
	return v.EncodingLength()
}

// ParseTLNum parses a TLNum from the head of buf.
// It is supposed to be used internally, so panic on index out of bounds.
func ParseTLNum(buf Buffer) (val TLNum, pos int) {
	switch x := buf[0]; {
	case x <= 0xfc:
		return TLNum(x), 1
	case x == 0xfd:
		return TLNum(binary.BigEndian.Uint16(buf[1:3])), 3
	case x == 0xfe:
		return TLNum(binary.BigEndian.Uint32(buf[1:5])), 5
	default:
		return TLNum(binary.BigEndian.Uint64(buf[1:9])), 9
	}
}

// EncodingLength is the size of the shortest big-endian encoding of v (1, 2, 4 or 8).
func (v Nat) EncodingLength() int {
	switch x := uint64(v); {
	case x <= 0xff:
		return 1
	case x <= 0xffff:
		return 2
	case x <= 0xffffffff:
		return 4
	default:
		return 8
	}
}

func (v Nat) EncodeInto(buf Buffer) int {
	x := uint64(v)
	switch n := v.EncodingLength(); n {
	case 1:
		buf[0] = byte(x)
	case 2:
		binary.BigEndian.PutUint16(buf, uint16(x))
	case 4:
		binary.BigEndian.PutUint32(buf, uint32(x))
	default:
		binary.BigEndian.PutUint64(buf, x)
	}
	return v.EncodingLength()
}

func (v Nat) Bytes() []byte {
	buf := make([]byte, v.EncodingLength())
	v.EncodeInto(buf)
	return buf
}

// ParseNat decodes a natural number whose encoding occupies the whole buf.
func ParseNat(buf Buffer) (Nat, error) {
	switch len(buf) {
	case 1:
		return Nat(buf[0]), nil
	case 2:
		return Nat(binary.BigEndian.Uint16(buf)), nil
	case 4:
		return Nat(binary.BigEndian.Uint32(buf)), nil
	case 8:
		return Nat(binary.BigEndian.Uint64(buf)), nil
	default:
		return 0, ErrFormat{"natural number length is not 1, 2, 4 or 8"}
	}
}

// TLVLength is the full size of a TLV element with a value of length l.
func TLVLength(typ TLNum, l int) int {
	return typ.EncodingLength() + TLNum(l).EncodingLength() + l
}

// EncodeTLHeader writes the type and length of a TLV element and returns the header size.
func EncodeTLHeader(buf Buffer, typ TLNum, l int) int {
	p := typ.EncodeInto(buf)
	return p + TLNum(l).EncodeInto(buf[p:])
}
