package encoding

import (
	"errors"
	"fmt"
)

// Buffer is a buffer of bytes
type Buffer []byte

// Wire is a collection of Buffer. May be allocated in non-contiguous memory.
type Wire []Buffer

// Join concatenates all buffers of the wire into one slice.
// A single-buffer wire is returned without copy.
func (w Wire) Join() []byte {
	switch len(w) {
	case 0:
		return []byte{}
	case 1:
		return w[0]
	}

	b := make([]byte, 0, w.Length())
	for _, v := range w {
		b = append(b, v...)
	}
	return b
}

// Length is the total number of bytes in the wire.
func (w Wire) Length() uint64 {
	ret := uint64(0)
	for _, v := range w {
		ret += uint64(len(v))
	}
	return ret
}

type ErrFormat struct {
	Msg string
}

func (e ErrFormat) Error() string {
	return e.Msg
}

type ErrUnrecognizedField struct {
	TypeNum TLNum
}

func (e ErrUnrecognizedField) Error() string {
	return fmt.Sprintf("there exists an unrecognized field that has a critical type number: %d", e.TypeNum)
}

type ErrSkipRequired struct {
	Name    string
	TypeNum TLNum
}

func (e ErrSkipRequired) Error() string {
	return fmt.Sprintf("the required field %s(%d) is missing in the input", e.Name, e.TypeNum)
}

var ErrBufferOverflow = errors.New("buffer overflow when parsing. One of the TLV Length is wrong")
