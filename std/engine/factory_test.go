package engine_test

import (
	"testing"

	"github.com/named-data/ndnode/std/engine"
	"github.com/named-data/ndnode/std/engine/face"
	"github.com/named-data/ndnode/std/ndn"
	tu "github.com/named-data/ndnode/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestNewFace(t *testing.T) {
	tu.SetT(t)

	f := tu.NoErr(engine.NewFace("unix:///run/nfd/nfd.sock"))
	require.IsType(t, &face.StreamFace{}, f)
	require.True(t, f.IsLocal())
	require.False(t, f.IsRunning())
	require.Equal(t, "stream-face (unix:///run/nfd/nfd.sock)", f.String())

	f = tu.NoErr(engine.NewFace("tcp4://127.0.0.1:6363"))
	require.IsType(t, &face.StreamFace{}, f)
	require.False(t, f.IsLocal())

	f = tu.NoErr(engine.NewFace("ws://localhost:9696/"))
	require.IsType(t, &face.WebSocketFace{}, f)

	f = tu.NoErr(engine.NewFace("https://localhost:443/ndn"))
	require.IsType(t, &face.Http3Face{}, f)

	_, err := engine.NewFace("udp://127.0.0.1:6363")
	require.ErrorAs(t, err, &ndn.ErrNotSupported{})

	_, err = engine.NewFace("tcp://")
	require.ErrorAs(t, err, &ndn.ErrInvalidValue{})

	tu.Err(engine.NewFace("://bad"))
}

func TestNewNode(t *testing.T) {
	tu.SetT(t)

	n := engine.NewNode(face.NewDummyFace())
	require.NotNil(t, n)
	require.Equal(t, 0, n.PendingInterestCount())
}
