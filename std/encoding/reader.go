package encoding

import "io"

// BufferView is a sequential parsing view of a Buffer.
// Values returned by ReadBuf share memory with the underlying buffer.
type BufferView struct {
	buf Buffer
	pos int
}

func NewBufferView(buf Buffer) *BufferView {
	return &BufferView{buf: buf}
}

func (r *BufferView) IsEOF() bool {
	return r.pos >= len(r.buf)
}

func (r *BufferView) Pos() int {
	return r.pos
}

func (r *BufferView) Length() int {
	return len(r.buf)
}

func (r *BufferView) ReadByte() (byte, error) {
	if r.IsEOF() {
		return 0, io.EOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadTLNum reads a VAR-NUMBER. A truncated number yields io.ErrUnexpectedEOF.
func (r *BufferView) ReadTLNum() (TLNum, error) {
	x, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	l := 0
	switch {
	case x <= 0xfc:
		return TLNum(x), nil
	case x == 0xfd:
		l = 2
	case x == 0xfe:
		l = 4
	default:
		l = 8
	}

	val := TLNum(0)
	for i := 0; i < l; i++ {
		if x, err = r.ReadByte(); err != nil {
			return 0, io.ErrUnexpectedEOF
		}
		val = val<<8 | TLNum(x)
	}
	return val, nil
}

// ReadBuf reads the next l bytes without copy.
func (r *BufferView) ReadBuf(l int) (Buffer, error) {
	if l < 0 || l > len(r.buf)-r.pos {
		return nil, ErrBufferOverflow
	}
	ret := r.buf[r.pos : r.pos+l]
	r.pos += l
	return ret, nil
}

// ReadTLV reads a whole TLV element, returning its type, value and raw encoding.
func (r *BufferView) ReadTLV() (typ TLNum, val Buffer, raw Buffer, err error) {
	start := r.pos
	if typ, err = r.ReadTLNum(); err != nil {
		return
	}
	l, err := r.ReadTLNum()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return
	}
	if l > TLNum(len(r.buf)-r.pos) {
		err = ErrBufferOverflow
		return
	}
	if val, err = r.ReadBuf(int(l)); err != nil {
		return
	}
	raw = r.buf[start:r.pos]
	return
}

// Skip skips the next n bytes.
func (r *BufferView) Skip(n int) error {
	_, err := r.ReadBuf(n)
	return err
}
