package encoding

import (
	"strings"

	"github.com/cespare/xxhash"
)

// Name is an ordered sequence of components.
type Name []Component

// NameFromStr parses a URI string into a Name
func NameFromStr(s string) (Name, error) {
	s = strings.TrimPrefix(s, "ndn:")
	strs := strings.Split(s, "/")
	// Removing leading and trailing empty strings given by /
	if strs[0] == "" {
		strs = strs[1:]
	}
	if len(strs) > 0 && strs[len(strs)-1] == "" {
		strs = strs[:len(strs)-1]
	}

	ret := make(Name, len(strs))
	for i, str := range strs {
		c, err := ComponentFromStr(str)
		if err != nil {
			return nil, err
		}
		ret[i] = c
	}
	return ret, nil
}

// NameFromBytes parses the TLV encoding of a Name (including the outer type 7).
func NameFromBytes(buf []byte) (Name, error) {
	r := NewBufferView(buf)
	typ, val, _, err := r.ReadTLV()
	if err != nil {
		return nil, err
	}
	if typ != TypeName {
		return nil, ErrFormat{"encoding.NameFromBytes: given bytes is not a Name"}
	}
	if !r.IsEOF() {
		return nil, ErrFormat{"encoding.NameFromBytes: given bytes have a wrong length"}
	}
	return ReadNameValue(val)
}

// ReadNameValue parses the value part of a Name TLV into components.
// Components share memory with val.
func ReadNameValue(val Buffer) (Name, error) {
	ret := make(Name, 0, 8)
	r := NewBufferView(val)
	for !r.IsEOF() {
		typ, cval, _, err := r.ReadTLV()
		if err != nil {
			return nil, err
		}
		ret = append(ret, Component{Typ: typ, Val: cval})
	}
	return ret, nil
}

func (n Name) String() string {
	if len(n) == 0 {
		return "/"
	}
	sb := strings.Builder{}
	for _, c := range n {
		sb.WriteByte('/')
		c.writeTo(&sb)
	}
	return sb.String()
}

// IsPrefix returns true if n is a prefix of rhs: n has no more components than
// rhs and every component of n equals the component at the same position.
// The empty name is a prefix of every name.
func (n Name) IsPrefix(rhs Name) bool {
	if len(n) > len(rhs) {
		return false
	}
	for i := range n {
		if !n[i].Equal(rhs[i]) {
			return false
		}
	}
	return true
}

func (n Name) Equal(rhs Name) bool {
	return len(n) == len(rhs) && n.IsPrefix(rhs)
}

// Compare orders names component by component; a prefix sorts first.
func (n Name) Compare(rhs Name) int {
	for i := 0; i < min(len(n), len(rhs)); i++ {
		if ret := n[i].Compare(rhs[i]); ret != 0 {
			return ret
		}
	}
	switch {
	case len(n) < len(rhs):
		return -1
	case len(n) > len(rhs):
		return 1
	default:
		return 0
	}
}

// Append appends one or more components to a copy of the name.
func (n Name) Append(rest ...Component) Name {
	ret := make(Name, len(n), len(n)+len(rest))
	copy(ret, n)
	return append(ret, rest...)
}

// Clone deep-copies the name, including component values.
func (n Name) Clone() Name {
	if n == nil {
		return nil
	}
	ret := make(Name, len(n))
	for i, c := range n {
		ret[i] = c.Clone()
	}
	return ret
}

// At returns the i-th component; negative indices count from the end.
func (n Name) At(i int) Component {
	if i < 0 {
		i = len(n) + i
	}
	if i < 0 || i >= len(n) {
		return Component{}
	}
	return n[i]
}

// Prefix returns the first i components; negative i drops components from the end.
func (n Name) Prefix(i int) Name {
	if i < 0 {
		i = len(n) + i
	}
	if i <= 0 {
		return Name{}
	}
	if i >= len(n) {
		return n
	}
	return n[:i]
}

func (n Name) innerLength() int {
	l := 0
	for _, c := range n {
		l += c.EncodingLength()
	}
	return l
}

// EncodingLength is the size of the full Name TLV.
func (n Name) EncodingLength() int {
	return TLVLength(TypeName, n.innerLength())
}

func (n Name) EncodeInto(buf Buffer) int {
	p := EncodeTLHeader(buf, TypeName, n.innerLength())
	for _, c := range n {
		p += c.EncodeInto(buf[p:])
	}
	return p
}

// Bytes returns the full Name TLV.
func (n Name) Bytes() []byte {
	buf := make([]byte, n.EncodingLength())
	n.EncodeInto(buf)
	return buf
}

// BytesInner returns the concatenated component TLVs without the Name header.
// The result preserves the canonical order of names under bytes.Compare for
// names sharing a prefix, which makes it usable as a storage key.
func (n Name) BytesInner() []byte {
	buf := make([]byte, n.innerLength())
	p := 0
	for _, c := range n {
		p += c.EncodeInto(buf[p:])
	}
	return buf
}

// Hash returns the xxhash of the component TLVs of the name.
func (n Name) Hash() uint64 {
	return xxhash.Sum64(n.BytesInner())
}

// PrefixHash returns the hashes of all prefixes of the name.
// ret[i] is the hash of n[:i], so ret[len(n)] == n.Hash().
func (n Name) PrefixHash() []uint64 {
	h := xxhash.New()
	ret := make([]uint64, len(n)+1)
	ret[0] = h.Sum64()
	for i, c := range n {
		h.Write(c.Bytes())
		ret[i+1] = h.Sum64()
	}
	return ret
}
