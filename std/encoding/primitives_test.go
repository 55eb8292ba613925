package encoding_test

import (
	"io"
	"math"
	"testing"

	enc "github.com/named-data/ndnode/std/encoding"
	tu "github.com/named-data/ndnode/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestTLNum(t *testing.T) {
	tu.SetT(t)

	for _, c := range []struct {
		val enc.TLNum
		buf []byte
	}{
		{0x05, []byte{0x05}},
		{0xfc, []byte{0xfc}},
		{0xfd, []byte{0xfd, 0x00, 0xfd}},
		{0x10000, []byte{0xfe, 0x00, 0x01, 0x00, 0x00}},
		{0x100000000, []byte{0xff, 0, 0, 0, 1, 0, 0, 0, 0}},
	} {
		buf := make([]byte, c.val.EncodingLength())
		require.Equal(t, len(c.buf), c.val.EncodeInto(buf))
		require.Equal(t, c.buf, buf)

		val, pos := enc.ParseTLNum(c.buf)
		require.Equal(t, c.val, val)
		require.Equal(t, len(c.buf), pos)

		val = tu.NoErr(enc.NewBufferView(c.buf).ReadTLNum())
		require.Equal(t, c.val, val)
	}

	_, err := enc.NewBufferView([]byte{0xfd, 0x01}).ReadTLNum()
	require.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestNat(t *testing.T) {
	tu.SetT(t)

	require.Equal(t, []byte{0x0a}, enc.Nat(10).Bytes())
	require.Equal(t, []byte{0x0f, 0xa0}, enc.Nat(4000).Bytes())
	require.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, enc.Nat(0x10000).Bytes())

	require.Equal(t, enc.Nat(4000), tu.NoErr(enc.ParseNat([]byte{0x0f, 0xa0})))
	tu.Err(enc.ParseNat([]byte{1, 2, 3}))
}

func TestCritical(t *testing.T) {
	require.True(t, enc.TLNum(7).IsCritical())
	require.True(t, enc.TLNum(129).IsCritical())
	require.False(t, enc.TLNum(128).IsCritical())
}

func TestReadTLV(t *testing.T) {
	tu.SetT(t)

	r := enc.NewBufferView([]byte("\x08\x02ab\x15\x00"))
	typ, val, raw, err := r.ReadTLV()
	require.NoError(t, err)
	require.Equal(t, enc.TLNum(8), typ)
	require.Equal(t, enc.Buffer("ab"), val)
	require.Equal(t, enc.Buffer("\x08\x02ab"), raw)

	typ, val, _, err = r.ReadTLV()
	require.NoError(t, err)
	require.Equal(t, enc.TLNum(0x15), typ)
	require.Equal(t, 0, len(val))
	require.True(t, r.IsEOF())

	_, _, _, err = enc.NewBufferView([]byte("\x08\x05ab")).ReadTLV()
	require.Equal(t, enc.ErrBufferOverflow, err)

	huge := []byte{0x06, 0xff, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	_, _, _, err = enc.NewBufferView(huge).ReadTLV()
	require.Equal(t, enc.ErrBufferOverflow, err)
	huge[2] = 0xff
	_, _, _, err = enc.NewBufferView(huge).ReadTLV()
	require.Equal(t, enc.ErrBufferOverflow, err)

	w := enc.Wire{[]byte("ab"), []byte("cd")}
	require.Equal(t, []byte("abcd"), w.Join())
	require.Equal(t, uint64(4), w.Length())
}

func TestReadBufBounds(t *testing.T) {
	tu.SetT(t)

	r := enc.NewBufferView([]byte("abc"))
	require.NoError(t, r.Skip(1))
	_, err := r.ReadBuf(math.MaxInt)
	require.Equal(t, enc.ErrBufferOverflow, err)
	_, err = r.ReadBuf(-1)
	require.Equal(t, enc.ErrBufferOverflow, err)
	_, err = r.ReadBuf(3)
	require.Equal(t, enc.ErrBufferOverflow, err)
	require.Equal(t, enc.Buffer("bc"), tu.NoErr(r.ReadBuf(2)))
	require.True(t, r.IsEOF())
}
