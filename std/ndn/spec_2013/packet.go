// Package spec_2013 implements the NDN-TLV 0.1 wire format used by the
// client node and its hub.
package spec_2013

import (
	"encoding/binary"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/ndn"
	"github.com/named-data/ndnode/std/types/optional"
)

// Packet is a decoded network packet. Exactly one field is set.
type Packet struct {
	Interest *ndn.Interest
	Data     *ndn.Data
}

// ReadPacket decodes a single Interest or Data frame.
func ReadPacket(frame enc.Buffer) (*Packet, error) {
	r := enc.NewBufferView(frame)
	typ, val, _, err := r.ReadTLV()
	if err != nil {
		return nil, err
	}
	if !r.IsEOF() {
		return nil, enc.ErrFormat{Msg: "trailing bytes after packet"}
	}

	switch typ {
	case TypeInterest:
		interest, err := readInterest(val)
		if err != nil {
			return nil, err
		}
		return &Packet{Interest: interest}, nil
	case TypeData:
		data, err := readData(val)
		if err != nil {
			return nil, err
		}
		return &Packet{Data: data}, nil
	default:
		return nil, ndn.ErrWrongType
	}
}

// EncodeInterest encodes an Interest packet.
func EncodeInterest(interest *ndn.Interest) enc.Wire {
	e := encoder{}
	e.nested(TypeInterest, func(e *encoder) {
		e.name(interest.Name)
		if hasSelectors(interest) {
			e.nested(TypeSelectors, func(e *encoder) {
				if v, ok := interest.MinSuffixComponents.Get(); ok {
					e.nat(TypeMinSuffixComponents, v)
				}
				if v, ok := interest.MaxSuffixComponents.Get(); ok {
					e.nat(TypeMaxSuffixComponents, v)
				}
				if v, ok := interest.ChildSelector.Get(); ok {
					e.nat(TypeChildSelector, v)
				}
				if interest.MustBeFresh {
					e.block(TypeMustBeFresh, nil)
				}
			})
		}
		if v, ok := interest.Nonce.Get(); ok {
			nonce := make([]byte, 4)
			binary.BigEndian.PutUint32(nonce, v)
			e.block(TypeNonce, nonce)
		}
		if v, ok := interest.Scope.Get(); ok {
			e.nat(TypeScope, v)
		}
		if v, ok := interest.Lifetime.Get(); ok {
			e.nat(TypeInterestLifetime, uint64(v.Milliseconds()))
		}
	})
	return enc.Wire{e.bytes()}
}

func hasSelectors(interest *ndn.Interest) bool {
	return interest.MinSuffixComponents.IsSet() ||
		interest.MaxSuffixComponents.IsSet() ||
		interest.ChildSelector.IsSet() ||
		interest.MustBeFresh
}

func readInterest(val enc.Buffer) (*ndn.Interest, error) {
	ret := &ndn.Interest{}
	hasName := false
	err := fields(val, func(typ enc.TLNum, v enc.Buffer) (bool, error) {
		var err error
		switch typ {
		case enc.TypeName:
			hasName = true
			ret.Name, err = enc.ReadNameValue(v)
		case TypeSelectors:
			err = readSelectors(ret, v)
		case TypeNonce:
			if len(v) != 4 {
				return true, enc.ErrFormat{Msg: "nonce must be 4 bytes"}
			}
			ret.Nonce = optional.Some(binary.BigEndian.Uint32(v))
		case TypeScope:
			var x uint64
			if x, err = readNat(v); err == nil {
				ret.Scope = optional.Some(x)
			}
		case TypeInterestLifetime:
			var d time.Duration
			if d, err = readMillis(v); err == nil {
				ret.Lifetime = optional.Some(d)
			}
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	if !hasName {
		return nil, enc.ErrSkipRequired{Name: "Name", TypeNum: enc.TypeName}
	}
	return ret, nil
}

func readSelectors(interest *ndn.Interest, val enc.Buffer) error {
	return fields(val, func(typ enc.TLNum, v enc.Buffer) (bool, error) {
		var err error
		var x uint64
		switch typ {
		case TypeMinSuffixComponents:
			if x, err = readNat(v); err == nil {
				interest.MinSuffixComponents = optional.Some(x)
			}
		case TypeMaxSuffixComponents:
			if x, err = readNat(v); err == nil {
				interest.MaxSuffixComponents = optional.Some(x)
			}
		case TypeChildSelector:
			if x, err = readNat(v); err == nil {
				interest.ChildSelector = optional.Some(x)
			}
		case TypeMustBeFresh:
			interest.MustBeFresh = true
		case TypePublisherPublicKeyLocator, TypeExclude:
			// not interpreted
		default:
			return false, nil
		}
		return true, err
	})
}

// EncodeData encodes a Data packet. A Data with SignatureNone is encoded
// without SignatureInfo and SignatureValue.
func EncodeData(data *ndn.Data) enc.Wire {
	e := encoder{}
	e.nested(TypeData, func(e *encoder) {
		e.name(data.Name)
		e.nested(TypeMetaInfo, func(e *encoder) {
			if v, ok := data.ContentType.Get(); ok {
				e.nat(TypeContentType, uint64(v))
			}
			if v, ok := data.Freshness.Get(); ok {
				e.nat(TypeFreshnessPeriod, uint64(v.Milliseconds()))
			}
		})
		e.block(TypeContent, data.Content)
		if data.Signature.Type != ndn.SignatureNone {
			e.nested(TypeSignatureInfo, func(e *encoder) {
				e.nat(TypeSignatureType, uint64(data.Signature.Type))
				if data.Signature.KeyLocator != nil {
					e.nested(TypeKeyLocator, func(e *encoder) {
						e.name(data.Signature.KeyLocator)
					})
				}
			})
			e.block(TypeSignatureValue, data.Signature.Value)
		}
	})
	return enc.Wire{e.bytes()}
}

func readData(val enc.Buffer) (*ndn.Data, error) {
	ret := &ndn.Data{
		Signature: ndn.Signature{Type: ndn.SignatureNone},
	}
	hasName := false
	err := fields(val, func(typ enc.TLNum, v enc.Buffer) (bool, error) {
		var err error
		switch typ {
		case enc.TypeName:
			hasName = true
			ret.Name, err = enc.ReadNameValue(v)
		case TypeMetaInfo:
			err = readMetaInfo(ret, v)
		case TypeContent:
			ret.Content = v
		case TypeSignatureInfo:
			err = readSignatureInfo(&ret.Signature, v)
		case TypeSignatureValue:
			ret.Signature.Value = v
		default:
			return false, nil
		}
		return true, err
	})
	if err != nil {
		return nil, err
	}
	if !hasName {
		return nil, enc.ErrSkipRequired{Name: "Name", TypeNum: enc.TypeName}
	}
	return ret, nil
}

func readMetaInfo(data *ndn.Data, val enc.Buffer) error {
	return fields(val, func(typ enc.TLNum, v enc.Buffer) (bool, error) {
		var err error
		var x uint64
		switch typ {
		case TypeContentType:
			if x, err = readNat(v); err == nil {
				data.ContentType = optional.Some(ndn.ContentType(x))
			}
		case TypeFreshnessPeriod:
			var d time.Duration
			if d, err = readMillis(v); err == nil {
				data.Freshness = optional.Some(d)
			}
		default:
			return false, nil
		}
		return true, err
	})
}

func readSignatureInfo(sig *ndn.Signature, val enc.Buffer) error {
	hasType := false
	err := fields(val, func(typ enc.TLNum, v enc.Buffer) (bool, error) {
		var err error
		switch typ {
		case TypeSignatureType:
			var x uint64
			if x, err = readNat(v); err == nil {
				hasType = true
				sig.Type = ndn.SigType(x)
			}
		case TypeKeyLocator:
			err = fields(v, func(typ enc.TLNum, v enc.Buffer) (bool, error) {
				if typ != enc.TypeName {
					// KeyLocatorDigest and friends are not interpreted
					return true, nil
				}
				var err error
				sig.KeyLocator, err = enc.ReadNameValue(v)
				return true, err
			})
		default:
			return false, nil
		}
		return true, err
	})
	if err == nil && !hasType {
		err = enc.ErrSkipRequired{Name: "SignatureType", TypeNum: TypeSignatureType}
	}
	return err
}

// PlaceholderSignature returns a Sha256WithRsa signature with an empty value.
// Nobody verifies it.
func PlaceholderSignature() ndn.Signature {
	return ndn.Signature{
		Type:  ndn.SignatureSha256WithRsa,
		Value: []byte{},
	}
}
