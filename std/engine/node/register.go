package node

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/log"
	"github.com/named-data/ndnode/std/ndn"
	spec "github.com/named-data/ndnode/std/ndn/spec_2013"
	"github.com/named-data/ndnode/std/types/optional"
)

// HubState is the progress of the registration handshake with the hub.
type HubState int

const (
	// HubIdle means no hub id is known and none is being fetched.
	HubIdle HubState = iota
	// HubFetchingId means at least one hub id fetch is in flight.
	HubFetchingId
	// HubRegistering means the hub id is known and a registration is being sent.
	HubRegistering
	// HubDone means the hub id is known and a registration was sent.
	HubDone
	// HubFailed means the last hub id fetch failed. The next registration
	// fetches again.
	HubFailed
)

func (s HubState) String() string {
	switch s {
	case HubIdle:
		return "Idle"
	case HubFetchingId:
		return "FetchingHubId"
	case HubRegistering:
		return "Registering"
	case HubDone:
		return "Done"
	case HubFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

const hubIdFetchLifetime = 4000 * time.Millisecond

// HubIdName is the name of the hub's key, whose digest identifies the hub.
var HubIdName = enc.Name{
	enc.NewGenericComponent("\xc1.M.S.localhost"),
	enc.NewGenericComponent("\xc1.M.SRV"),
	enc.NewGenericComponent("ndnd"),
	enc.NewGenericComponent("KEY"),
}

const selfregAction = "selfreg"

// HubId returns the cached hub id, or nil if it was never fetched.
func (n *Node) HubId() []byte {
	return n.hubId
}

// HubState returns the state of the registration handshake.
func (n *Node) HubState() HubState {
	return n.hubState
}

// RegisterPrefix asks the hub to forward Interests under prefix to this node
// and routes them to onInterest.
//
// The id is assigned before the handshake runs. If the hub id is not known
// yet, it is fetched first; onRegisterFailed is called with the prefix if the
// fetch fails. Registrations are not confirmed by the hub.
func (n *Node) RegisterPrefix(
	prefix enc.Name,
	onInterest ndn.OnInterest,
	onRegisterFailed ndn.OnRegisterFailed,
	flags ndn.ForwardingFlags,
) (uint64, error) {
	if onInterest == nil {
		return 0, ndn.ErrInvalidValue{Item: "onInterest", Value: nil}
	}

	n.lastRptId++
	id := n.lastRptId
	prefix = prefix.Clone()

	if len(n.hubId) > 0 {
		if err := n.registerWithHub(id, prefix, onInterest, flags); err != nil {
			n.rpt.remove(id)
			return 0, err
		}
		return id, nil
	}

	if err := n.fetchHubId(id, prefix, onInterest, onRegisterFailed, flags); err != nil {
		return 0, err
	}
	return id, nil
}

// UnregisterPrefix stops routing Interests to the registration.
// The hub is not notified.
func (n *Node) UnregisterPrefix(id uint64) {
	if n.rpt.remove(id) > 0 {
		log.Debug(n, "Prefix unregistered", "id", id)
	}
}

// fetchHubId sends the hub key Interest. Concurrent registrations each send
// their own fetch.
func (n *Node) fetchHubId(
	id uint64,
	prefix enc.Name,
	onInterest ndn.OnInterest,
	onRegisterFailed ndn.OnRegisterFailed,
	flags ndn.ForwardingFlags,
) error {
	fail := func() {
		n.metrics.RegisterFailures.Inc()
		if n.hubFetches == 0 && len(n.hubId) == 0 {
			n.hubState = HubFailed
		}
		log.Warn(n, "Failed to fetch hub id", "prefix", prefix)
		if onRegisterFailed != nil {
			onRegisterFailed(prefix)
		}
	}

	onData := func(_ *ndn.Interest, data *ndn.Data) {
		n.hubFetches--
		if data.Signature.Type != ndn.SignatureSha256WithRsa || len(data.Content) == 0 {
			log.Warn(n, "Unacceptable hub key", "name", data.Name, "sigType", data.Signature.Type)
			fail()
			return
		}

		if len(n.hubId) == 0 {
			digest := sha256.Sum256(data.Content)
			n.hubId = digest[:]
			log.Info(n, "Hub id fetched", "hubId", hex.EncodeToString(n.hubId))
		}
		if err := n.registerWithHub(id, prefix, onInterest, flags); err != nil {
			log.Error(n, "Failed to send registration", "err", err, "prefix", prefix)
		}
	}

	onTimeout := func(*ndn.Interest) {
		n.hubFetches--
		fail()
	}

	interest := &ndn.Interest{
		Name:     HubIdName,
		Lifetime: optional.Some(hubIdFetchLifetime),
	}
	if _, err := n.SendInterest(interest, onData, onTimeout); err != nil {
		return err
	}

	n.hubFetches++
	n.hubState = HubFetchingId
	n.metrics.HubIdFetches.Inc()
	log.Debug(n, "Fetching hub id", "prefix", prefix)
	return nil
}

// registerWithHub installs the RPT entry and sends the self-registration
// Interest directly through the face, without a PIT entry.
func (n *Node) registerWithHub(id uint64, prefix enc.Name, onInterest ndn.OnInterest, flags ndn.ForwardingFlags) error {
	n.hubState = HubRegistering

	interest := n.makeSelfregInterest(prefix, flags)
	n.rpt.add(&rptEntry{
		id:         id,
		prefix:     prefix,
		onInterest: onInterest,
	})
	err := n.send(spec.EncodeInterest(interest))

	n.hubState = HubDone
	if err != nil {
		return err
	}
	n.metrics.Registrations.Inc()
	log.Info(n, "Prefix registered", "prefix", prefix, "id", id)
	return nil
}

// makeSelfregInterest builds /ndnx/<hubId>/selfreg/<Data carrying a ForwardingEntry>.
func (n *Node) makeSelfregInterest(prefix enc.Name, flags ndn.ForwardingFlags) *ndn.Interest {
	entry := &ndn.ForwardingEntry{
		Action: selfregAction,
		Prefix: prefix,
		Flags:  flags,
	}
	data := &ndn.Data{
		Name:      enc.Name{},
		Content:   spec.EncodeForwardingEntry(entry).Join(),
		Signature: spec.PlaceholderSignature(),
	}

	return &ndn.Interest{
		Name: enc.Name{
			enc.NewGenericComponent("ndnx"),
			enc.NewBytesComponent(n.hubId),
			enc.NewGenericComponent(selfregAction),
			enc.NewBytesComponent(spec.EncodeData(data).Join()),
		},
		Scope: optional.Some[uint64](1),
		Nonce: optional.Some(nonce32(n.timer.Nonce())),
	}
}
