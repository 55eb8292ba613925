package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/named-data/ndnode/std/engine/face"
	"github.com/named-data/ndnode/std/log"
	tu "github.com/named-data/ndnode/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestOptionsLoad(t *testing.T) {
	tu.SetT(t)
	prev := log.Default()
	defer log.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "ndnode.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"transport: tcp://127.0.0.1:6363\nlog_level: WARN\nstrict_prefix_match: true\n"), 0644))

	opts := &Options{ConfigFile: path}
	require.NoError(t, opts.Load())
	require.Equal(t, "tcp://127.0.0.1:6363", opts.Config.Transport)
	require.Equal(t, log.LevelWarn, log.Default().Level())

	n := tu.NoErr(opts.newNode())
	require.True(t, n.StrictPrefixMatch)
	require.IsType(t, &face.StreamFace{}, n.Face())

	// flags win over the file
	opts = &Options{ConfigFile: path, LogLevel: "debug", Transport: "ws://localhost:9696"}
	require.NoError(t, opts.Load())
	require.Equal(t, "ws://localhost:9696", opts.Config.Transport)
	require.Equal(t, log.LevelDebug, log.Default().Level())
	require.IsType(t, &face.WebSocketFace{}, tu.NoErr(opts.newFace()))

	opts = &Options{LogLevel: "nope"}
	require.Error(t, opts.Load())
}
