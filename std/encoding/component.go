package encoding

import (
	"bytes"
	"strconv"
	"strings"
)

const (
	TypeName                          TLNum = 0x07
	TypeImplicitSha256DigestComponent TLNum = 0x01
	TypeGenericNameComponent          TLNum = 0x08
)

const hexUpper = "0123456789ABCDEF"

// Component is a single name component: a TLV type number and an opaque value.
type Component struct {
	Typ TLNum
	Val []byte
}

// NewGenericComponent creates a generic component holding the bytes of s.
func NewGenericComponent(s string) Component {
	return Component{Typ: TypeGenericNameComponent, Val: []byte(s)}
}

// NewBytesComponent creates a generic component holding a copy of b.
func NewBytesComponent(b []byte) Component {
	return Component{Typ: TypeGenericNameComponent, Val: append([]byte{}, b...)}
}

func (c Component) Clone() Component {
	return Component{
		Typ: c.Typ,
		Val: append([]byte(nil), c.Val...),
	}
}

// Equal is exact equality of type and bytes.
func (c Component) Equal(rhs Component) bool {
	return c.Typ == rhs.Typ && bytes.Equal(c.Val, rhs.Val)
}

// Compare orders components by type, then length, then bytes (NDN canonical order).
func (c Component) Compare(rhs Component) int {
	if c.Typ != rhs.Typ {
		if c.Typ < rhs.Typ {
			return -1
		}
		return 1
	}
	if len(c.Val) != len(rhs.Val) {
		if len(c.Val) < len(rhs.Val) {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.Val, rhs.Val)
}

func (c Component) EncodingLength() int {
	return TLVLength(c.Typ, len(c.Val))
}

func (c Component) EncodeInto(buf Buffer) int {
	p := EncodeTLHeader(buf, c.Typ, len(c.Val))
	return p + copy(buf[p:], c.Val)
}

func (c Component) Bytes() []byte {
	buf := make([]byte, c.EncodingLength())
	c.EncodeInto(buf)
	return buf
}

// String returns the URI representation of the component.
func (c Component) String() string {
	sb := strings.Builder{}
	c.writeTo(&sb)
	return sb.String()
}

func (c Component) writeTo(sb *strings.Builder) {
	if c.Typ != TypeGenericNameComponent {
		sb.WriteString(strconv.FormatUint(uint64(c.Typ), 10))
		sb.WriteByte('=')
	}

	// A value made of periods only gets three extra periods
	onlyPeriods := true
	for _, b := range c.Val {
		if b != '.' {
			onlyPeriods = false
			break
		}
	}
	if onlyPeriods {
		sb.WriteString("...")
	}

	for _, b := range c.Val {
		if isLegalCompText(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(hexUpper[b>>4])
			sb.WriteByte(hexUpper[b&0x0f])
		}
	}
}

// ComponentFromStr parses the URI representation of a component.
// "type=value" selects a numeric type, otherwise the component is generic.
func ComponentFromStr(s string) (Component, error) {
	ret := Component{Typ: TypeGenericNameComponent}
	valStr := s
	if i := strings.IndexByte(s, '='); i >= 0 {
		typ, err := strconv.ParseUint(s[:i], 10, 64)
		if err != nil || typ == 0 {
			return Component{}, ErrFormat{"invalid component type: " + s[:i]}
		}
		ret.Typ = TLNum(typ)
		valStr = s[i+1:]
	}

	val, err := unescapeComponent(valStr)
	if err != nil {
		return Component{}, err
	}
	ret.Val = val
	return ret, nil
}

// ParseComponent reads a component TLV from the head of buf.
func ParseComponent(buf Buffer) (Component, int, error) {
	r := NewBufferView(buf)
	typ, val, _, err := r.ReadTLV()
	if err != nil {
		return Component{}, 0, err
	}
	return Component{Typ: typ, Val: val}, r.Pos(), nil
}

func unescapeComponent(s string) ([]byte, error) {
	if strings.Trim(s, ".") == "" && len(s) >= 3 {
		return []byte(s[3:]), nil
	}

	val := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		switch {
		case s[i] == '%':
			if i+3 > len(s) {
				return nil, ErrFormat{"invalid component value: " + s}
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return nil, ErrFormat{"invalid component value: " + s}
			}
			val = append(val, byte(v))
			i += 3
		case s[i] == '/' || s[i] == '\\':
			return nil, ErrFormat{"invalid component value: " + s}
		default:
			// Gracefully accept characters that should have been escaped
			val = append(val, s[i])
			i++
		}
	}
	return val, nil
}

func isLegalCompText(b byte) bool {
	return ('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9') ||
		b == '-' || b == '.' || b == '_' || b == '~'
}
