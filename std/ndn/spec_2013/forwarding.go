package spec_2013

import (
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/ndn"
	"github.com/named-data/ndnode/std/types/optional"
)

// EncodeForwardingEntry encodes a ForwardingEntry.
// FaceId and FreshnessPeriod are omitted when unset.
func EncodeForwardingEntry(fe *ndn.ForwardingEntry) enc.Wire {
	e := encoder{}
	e.nested(TypeForwardingEntry, func(e *encoder) {
		if fe.Action != "" {
			e.block(TypeAction, []byte(fe.Action))
		}
		e.name(fe.Prefix)
		if v, ok := fe.FaceId.Get(); ok {
			e.nat(TypeFaceID, v)
		}
		e.nat(TypeForwardingFlags, uint64(fe.Flags))
		if v, ok := fe.FreshnessPeriod.Get(); ok {
			e.nat(TypeFreshnessPeriod, uint64(v.Milliseconds()))
		}
	})
	return enc.Wire{e.bytes()}
}

// ReadForwardingEntry decodes a ForwardingEntry.
func ReadForwardingEntry(buf enc.Buffer) (*ndn.ForwardingEntry, error) {
	r := enc.NewBufferView(buf)
	typ, val, _, err := r.ReadTLV()
	if err != nil {
		return nil, err
	}
	if typ != TypeForwardingEntry {
		return nil, ndn.ErrWrongType
	}

	ret := &ndn.ForwardingEntry{}
	err = fields(val, func(typ enc.TLNum, v enc.Buffer) (bool, error) {
		var err error
		var x uint64
		switch typ {
		case TypeAction:
			ret.Action = string(v)
		case enc.TypeName:
			ret.Prefix, err = enc.ReadNameValue(v)
		case TypeFaceID:
			if x, err = readNat(v); err == nil {
				ret.FaceId = optional.Some(x)
			}
		case TypeForwardingFlags:
			if x, err = readNat(v); err == nil {
				ret.Flags = ndn.ForwardingFlags(x)
			}
		case TypeFreshnessPeriod:
			var d time.Duration
			if d, err = readMillis(v); err == nil {
				ret.FreshnessPeriod = optional.Some(d)
			}
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
