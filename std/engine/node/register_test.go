package node_test

import (
	"crypto/sha256"
	"testing"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/engine/node"
	"github.com/named-data/ndnode/std/ndn"
	spec "github.com/named-data/ndnode/std/ndn/spec_2013"
	tu "github.com/named-data/ndnode/std/utils/testutils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var hubKey = []byte("hub public key")

func (fx *fixture) feedHubKey(sigType ndn.SigType, content []byte) error {
	return fx.feed(spec.EncodeData(&ndn.Data{
		Name:      node.HubIdName,
		Content:   content,
		Signature: ndn.Signature{Type: sigType, Value: []byte{0xaa}},
	}))
}

func (fx *fixture) register(prefix string, onInterest ndn.OnInterest, onFailed ndn.OnRegisterFailed) uint64 {
	if onInterest == nil {
		onInterest = func(enc.Name, *ndn.Interest, ndn.Face, uint64) {}
	}
	return tu.NoErr(fx.node.RegisterPrefix(
		tu.NoErr(enc.NameFromStr(prefix)), onInterest, onFailed, ndn.DefaultForwardingFlags))
}

// consumeSelfreg checks a self-registration Interest and returns its entry.
func (fx *fixture) consumeSelfreg() *ndn.ForwardingEntry {
	interest := fx.consumeInterest()
	name := interest.Name
	require.Equal(fx.t, 4, len(name))
	require.Equal(fx.t, "ndnx", name[0].String())
	require.Equal(fx.t, fx.node.HubId(), name[1].Val)
	require.Equal(fx.t, "selfreg", name[2].String())
	require.Equal(fx.t, uint64(1), interest.Scope.Unwrap())

	pkt := tu.NoErr(spec.ReadPacket(name[3].Val))
	require.NotNil(fx.t, pkt.Data)
	require.Equal(fx.t, 0, len(pkt.Data.Name))
	require.Equal(fx.t, ndn.SignatureSha256WithRsa, pkt.Data.Signature.Type)
	require.Equal(fx.t, 0, len(pkt.Data.Signature.Value))

	return tu.NoErr(spec.ReadForwardingEntry(pkt.Data.Content))
}

func TestRegisterPrefix(t *testing.T) {
	fx := newFixture(t)
	require.Equal(t, node.HubIdle, fx.node.HubState())

	var gotPrefix enc.Name
	var gotId uint64
	var gotFace ndn.Face
	calls := 0
	id := fx.register("/a", func(prefix enc.Name, interest *ndn.Interest, face ndn.Face, regId uint64) {
		calls++
		gotPrefix = prefix
		gotId = regId
		gotFace = face
		require.Equal(t, "/a/b/c", interest.Name.String())
	}, func(enc.Name) {
		t.Fatal("registration should not fail")
	})
	require.Equal(t, uint64(1), id)
	require.Equal(t, node.HubFetchingId, fx.node.HubState())
	require.Equal(t, 0, fx.node.RegisteredPrefixCount())

	fetch := fx.consumeInterest()
	require.Equal(t, "/%C1.M.S.localhost/%C1.M.SRV/ndnd/KEY", fetch.Name.String())
	require.Equal(t, 4*time.Second, fetch.Lifetime.Unwrap())

	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))
	digest := sha256.Sum256(hubKey)
	require.Equal(t, digest[:], fx.node.HubId())
	require.Equal(t, node.HubDone, fx.node.HubState())
	require.Equal(t, 1, fx.node.RegisteredPrefixCount())
	require.Equal(t, 0, fx.node.PendingInterestCount())

	entry := fx.consumeSelfreg()
	require.Equal(t, "selfreg", entry.Action)
	require.Equal(t, "/a", entry.Prefix.String())
	require.Equal(t, ndn.DefaultForwardingFlags, entry.Flags)
	require.False(t, entry.FaceId.IsSet())
	require.False(t, entry.FreshnessPeriod.IsSet())

	require.NoError(t, fx.feedInterest("/a/b/c"))
	require.Equal(t, 1, calls)
	require.Equal(t, "/a", gotPrefix.String())
	require.Equal(t, id, gotId)
	require.Equal(t, fx.face, gotFace)

	m := fx.node.Metrics()
	require.Equal(t, 1.0, testutil.ToFloat64(m.HubIdFetches))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Registrations))
	require.Equal(t, 1.0, testutil.ToFloat64(m.InterestsDispatched))
}

func TestRegisterWithKnownHubId(t *testing.T) {
	fx := newFixture(t)

	fx.register("/a", nil, nil)
	fx.consumeInterest()
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))
	fx.consumeSelfreg()

	// no second fetch
	id := fx.register("/x/y", nil, nil)
	require.Equal(t, uint64(2), id)
	require.Equal(t, 2, fx.node.RegisteredPrefixCount())
	entry := fx.consumeSelfreg()
	require.Equal(t, "/x/y", entry.Prefix.String())
	tu.Err(fx.face.Consume())
	require.Equal(t, 1.0, testutil.ToFloat64(fx.node.Metrics().HubIdFetches))
}

func TestConcurrentFetchesNotDeduplicated(t *testing.T) {
	fx := newFixture(t)

	fx.register("/a", nil, nil)
	fx.register("/b", nil, nil)
	require.Equal(t, 2, fx.node.PendingInterestCount())
	require.Equal(t, 2.0, testutil.ToFloat64(fx.node.Metrics().HubIdFetches))
	fx.consumeInterest()
	fx.consumeInterest()

	// one Data satisfies one fetch only
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))
	first := fx.node.HubId()
	require.Equal(t, 1, fx.node.RegisteredPrefixCount())
	require.Equal(t, 1, fx.node.PendingInterestCount())
	require.Equal(t, "/a", fx.consumeSelfreg().Prefix.String())

	// the cache is written once
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, []byte("another key")))
	require.Equal(t, first, fx.node.HubId())
	require.Equal(t, 2, fx.node.RegisteredPrefixCount())
	require.Equal(t, "/b", fx.consumeSelfreg().Prefix.String())
}

func TestRegisterFetchTimeout(t *testing.T) {
	fx := newFixture(t)

	failed := []string{}
	onFailed := func(prefix enc.Name) { failed = append(failed, prefix.String()) }
	fx.register("/a", func(enc.Name, *ndn.Interest, ndn.Face, uint64) {
		t.Fatal("not registered")
	}, onFailed)

	fx.advance(3900 * time.Millisecond)
	require.Empty(t, failed)
	fx.advance(200 * time.Millisecond)
	require.Equal(t, []string{"/a"}, failed)
	require.Equal(t, node.HubFailed, fx.node.HubState())
	require.Nil(t, fx.node.HubId())
	require.Equal(t, 0, fx.node.RegisteredPrefixCount())

	require.NoError(t, fx.feedInterest("/a/b"))
	require.Equal(t, 1.0, testutil.ToFloat64(fx.node.Metrics().InterestsUnhandled))

	// the next registration retries the fetch
	fx.register("/b", nil, onFailed)
	require.Equal(t, node.HubFetchingId, fx.node.HubState())
	require.Equal(t, 2.0, testutil.ToFloat64(fx.node.Metrics().HubIdFetches))
}

func TestRegisterUnacceptableHubKey(t *testing.T) {
	fx := newFixture(t)

	failed := 0
	onFailed := func(enc.Name) { failed++ }

	fx.register("/a", nil, onFailed)
	require.NoError(t, fx.feedHubKey(ndn.SignatureDigestSha256, hubKey))
	require.Equal(t, 1, failed)

	fx.register("/a", nil, onFailed)
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, nil))
	require.Equal(t, 2, failed)

	require.Nil(t, fx.node.HubId())
	require.Equal(t, node.HubFailed, fx.node.HubState())
	require.Equal(t, 0, fx.node.RegisteredPrefixCount())
	require.Equal(t, 2.0, testutil.ToFloat64(fx.node.Metrics().RegisterFailures))
}

func TestRegisterFailureWhilePeerFetchInFlight(t *testing.T) {
	fx := newFixture(t)

	fx.register("/a", nil, nil)
	fx.advance(2 * time.Second)
	fx.register("/b", nil, nil)

	// the first fetch times out while the second is in flight
	fx.advance(2100 * time.Millisecond)
	require.Equal(t, node.HubFetchingId, fx.node.HubState())

	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))
	require.Equal(t, node.HubDone, fx.node.HubState())
	require.Equal(t, 1, fx.node.RegisteredPrefixCount())
}

func TestDispatchLongestRegistration(t *testing.T) {
	fx := newFixture(t)

	got := []string{}
	handler := func(prefix enc.Name, _ *ndn.Interest, _ ndn.Face, _ uint64) {
		got = append(got, prefix.String())
	}
	fx.register("/a", handler, nil)
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))
	fx.register("/x/y/z", handler, nil)
	fx.register("/p/q/r", handler, nil)

	// the entry with the most components wins, even if it is not a prefix
	require.NoError(t, fx.feedInterest("/a/b"))
	require.Equal(t, []string{"/x/y/z"}, got)

	fx.node.StrictPrefixMatch = true
	require.NoError(t, fx.feedInterest("/a/b"))
	require.NoError(t, fx.feedInterest("/p/q/r/s"))
	require.NoError(t, fx.feedInterest("/nothing"))
	require.Equal(t, []string{"/x/y/z", "/a", "/p/q/r"}, got)
	require.Equal(t, 1.0, testutil.ToFloat64(fx.node.Metrics().InterestsUnhandled))
}

func TestUnregisterPrefix(t *testing.T) {
	fx := newFixture(t)

	calls := 0
	id := fx.register("/a", func(enc.Name, *ndn.Interest, ndn.Face, uint64) { calls++ }, nil)
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))
	require.NoError(t, fx.feedInterest("/a"))
	require.Equal(t, 1, calls)

	fx.node.UnregisterPrefix(id)
	fx.node.UnregisterPrefix(id)
	require.Equal(t, 0, fx.node.RegisteredPrefixCount())
	require.NoError(t, fx.feedInterest("/a"))
	require.Equal(t, 1, calls)
}

func TestUnregisterBeforeHandshake(t *testing.T) {
	fx := newFixture(t)

	id := fx.register("/a", nil, nil)
	fx.node.UnregisterPrefix(id)
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))

	// the handshake still completes and installs the entry
	require.Equal(t, 1, fx.node.RegisteredPrefixCount())
}

func TestInterestCallbackPanic(t *testing.T) {
	fx := newFixture(t)

	fx.register("/a", func(enc.Name, *ndn.Interest, ndn.Face, uint64) { panic("boom") }, nil)
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))
	require.ErrorIs(t, fx.feedInterest("/a"), ndn.ErrCallbackPanic)
	require.Equal(t, 1, fx.node.RegisteredPrefixCount())
}

func TestReplyThroughFace(t *testing.T) {
	fx := newFixture(t)

	fx.register("/a", func(_ enc.Name, interest *ndn.Interest, face ndn.Face, _ uint64) {
		require.NoError(t, face.Send(spec.EncodeData(&ndn.Data{
			Name:      interest.Name,
			Content:   []byte("reply"),
			Signature: spec.PlaceholderSignature(),
		})))
	}, nil)
	fx.consumeInterest()
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))
	fx.consumeSelfreg()

	require.NoError(t, fx.feedInterest("/a/1"))
	pkt := tu.NoErr(spec.ReadPacket(tu.NoErr(fx.face.Consume())))
	require.Equal(t, "/a/1", pkt.Data.Name.String())
	require.Equal(t, []byte("reply"), pkt.Data.Content)
}

func TestRegisterSyncSendFailure(t *testing.T) {
	fx := newFixture(t)

	fx.register("/a", nil, nil)
	require.NoError(t, fx.feedHubKey(ndn.SignatureSha256WithRsa, hubKey))
	require.Equal(t, 1, fx.node.RegisteredPrefixCount())

	fx.face.SendErr = errTest
	tu.Err(fx.node.RegisterPrefix(enc.Name{}, func(enc.Name, *ndn.Interest, ndn.Face, uint64) {}, nil, 0))
	require.Equal(t, 1, fx.node.RegisteredPrefixCount())
	tu.Err(fx.node.RegisterPrefix(enc.Name{}, nil, nil, 0))
}
