package face_test

import (
	"errors"
	"testing"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/engine/face"
	tu "github.com/named-data/ndnode/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestBasicConsume(t *testing.T) {
	tu.SetT(t)

	testOnData := func([]byte) {
		t.Fatal("No data should be received in this test.")
	}
	// onError is not actually called by dummy face.
	testOnError := func(err error) {
		require.NoError(t, err)
	}

	face := face.NewDummyFace()
	tu.Err(face.Consume())
	require.Error(t, face.Open())
	face.OnPacket(testOnData)
	face.OnError(testOnError)
	require.NoError(t, face.Open())
	require.Error(t, face.Open())
	require.Equal(t, 1, face.Opens())
	tu.Err(face.Consume())

	require.NoError(t, face.Send(enc.Wire{enc.Buffer{0x05, 0x03, 0x01, 0x02, 0x03}}))
	require.Equal(t, 1, face.Sent())
	data := tu.NoErr(face.Consume())
	require.Equal(t, enc.Buffer{0x05, 0x03, 0x01, 0x02, 0x03}, data)
	tu.Err(face.Consume())

	// multi-buffer wires are joined
	require.NoError(t, face.Send(enc.Wire{enc.Buffer{0x05, 0x01}, enc.Buffer{0x01}}))
	data = tu.NoErr(face.Consume())
	require.Equal(t, enc.Buffer{0x05, 0x01, 0x01}, data)

	require.NoError(t, face.Close())
	require.Error(t, face.Close())
	require.Error(t, face.Send(enc.Wire{enc.Buffer{0x06, 0x00}}))
}

func TestBasicFeed(t *testing.T) {
	tu.SetT(t)

	frames := []enc.Buffer{}
	face := face.NewDummyFace()
	face.OnPacket(func(frame []byte) {
		frames = append(frames, frame)
	})
	face.OnError(func(err error) {})
	require.Error(t, face.FeedPacket(enc.Buffer{0x06, 0x00}))
	require.NoError(t, face.Open())

	require.NoError(t, face.FeedPacket(enc.Buffer{0x05, 0x03, 0x01, 0x02, 0x03}))
	require.NoError(t, face.FeedPacket(enc.Buffer{0x05, 0x01, 0x01}))
	require.Equal(t, []enc.Buffer{
		{0x05, 0x03, 0x01, 0x02, 0x03},
		{0x05, 0x01, 0x01},
	}, frames)
	require.NoError(t, face.Close())
}

func TestDummyFail(t *testing.T) {
	var got error
	downs := 0
	face := face.NewDummyFace()
	face.OnPacket(func([]byte) {})
	face.OnError(func(err error) { got = err })
	cancel := face.OnDown(func() { downs++ })
	require.NoError(t, face.Open())

	boom := errors.New("boom")
	face.Fail(boom)
	require.Equal(t, boom, got)
	require.Equal(t, 1, downs)
	require.False(t, face.IsRunning())

	// the face can be opened again
	cancel()
	require.NoError(t, face.Open())
	face.Fail(boom)
	require.Equal(t, 1, downs)
	require.Equal(t, 2, face.Opens())
}
