package tools

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/engine/node"
	"github.com/named-data/ndnode/std/log"
	"github.com/named-data/ndnode/std/ndn"
	spec "github.com/named-data/ndnode/std/ndn/spec_2013"
	"github.com/named-data/ndnode/std/object/storage"
	"github.com/named-data/ndnode/std/types/optional"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// Serve answers Interests under a prefix from a store.
type Serve struct {
	opts *Options

	storeUri  string
	metrics   string
	echo      bool
	cacheSize int
	freshness int

	node  *node.Node
	store ndn.Store
	dir   *storage.MemoryFifoDir

	nRecv   int
	nServed int
}

func CmdServe(opts *Options) *cobra.Command {
	sv := Serve{opts: opts}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "serve PREFIX",
		Short:   "Serve Data under a name prefix",
		Long: `Register a prefix with the local hub and answer Interests under it
from a store. With --echo, Interests that miss the store are answered
with a Data carrying the Interest name as content.`,
		Args:    cobra.ExactArgs(1),
		Example: `  ndnode serve /my/prefix --store sqlite:///var/lib/ndnode/data.db --metrics :9090`,
		RunE:    sv.run,
	}

	cmd.Flags().StringVar(&sv.storeUri, "store", "", "store URI: memory://, badger://PATH, sqlite://PATH or leveldb://PATH")
	cmd.Flags().StringVar(&sv.metrics, "metrics", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&sv.echo, "echo", false, "answer store misses with the Interest name")
	cmd.Flags().IntVar(&sv.cacheSize, "cache-size", 1024, "number of echoed Data kept in the store")
	cmd.Flags().IntVar(&sv.freshness, "freshness", 1000, "freshness period of echoed Data, in milliseconds")
	return cmd
}

func (sv *Serve) String() string {
	return "serve"
}

func (sv *Serve) run(_ *cobra.Command, args []string) error {
	prefix, err := enc.NameFromStr(args[0])
	if err != nil {
		return fmt.Errorf("invalid prefix %s: %w", args[0], err)
	}

	storeUri := sv.storeUri
	if storeUri == "" {
		storeUri = sv.opts.Config.Store
	}
	store, err := storage.Open(storeUri)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := sv.opts.newNode()
	if err != nil {
		return err
	}

	metrics := sv.metrics
	if metrics == "" {
		metrics = sv.opts.Config.Metrics
	}
	if metrics != "" {
		srv := sv.serveMetrics(n, metrics)
		defer srv.Close()
	}

	if err = sv.start(n, store, prefix); err != nil {
		return err
	}
	fmt.Printf("SERVING %s\n", prefix)
	defer sv.stats(prefix)

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigchan)
	go func() {
		<-sigchan
		n.Shutdown()
	}()

	return n.Run()
}

// start registers the prefix. Interests are answered once the node runs.
func (sv *Serve) start(n *node.Node, store ndn.Store, prefix enc.Name) error {
	sv.node = n
	sv.store = store
	sv.dir = storage.NewMemoryFifoDir(sv.cacheSize)

	_, err := n.RegisterPrefix(prefix, sv.onInterest, func(prefix enc.Name) {
		log.Error(sv, "Prefix registration failed", "prefix", prefix)
		n.Shutdown()
	}, ndn.DefaultForwardingFlags)
	return err
}

func (sv *Serve) serveMetrics(n *node.Node, addr string) *http.Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(n.Metrics())
	reg.MustRegister(collectors.NewGoCollector())

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(sv, "Metrics server failed", "err", err)
		}
	}()
	log.Info(sv, "Serving metrics", "addr", addr)
	return srv
}

func (sv *Serve) stats(prefix enc.Name) {
	fmt.Printf("\n--- %s serve statistics ---\n", prefix)
	fmt.Printf("%d Interests received, %d answered\n", sv.nRecv, sv.nServed)
}

func (sv *Serve) onInterest(_ enc.Name, interest *ndn.Interest, face ndn.Face, _ uint64) {
	log.Debug(sv, "Interest received", "name", interest.Name)
	sv.nRecv++

	exact := interest.MaxSuffixComponents.GetOr(^uint64(0)) <= 1
	wire, err := sv.store.Get(interest.Name, !exact)
	if err != nil {
		log.Error(sv, "Store lookup failed", "err", err, "name", interest.Name)
		return
	}

	if wire == nil {
		if !sv.echo {
			return
		}
		if wire, err = sv.makeEcho(interest.Name); err != nil {
			log.Error(sv, "Unable to store echo", "err", err, "name", interest.Name)
			return
		}
	}

	if err := face.Send(enc.Wire{wire}); err != nil {
		log.Error(sv, "Unable to reply with data", "err", err, "name", interest.Name)
		return
	}
	sv.nServed++
}

// makeEcho creates the echo Data and keeps it in the store.
func (sv *Serve) makeEcho(name enc.Name) ([]byte, error) {
	data := &ndn.Data{
		Name:        name,
		ContentType: optional.Some(ndn.ContentTypeBlob),
		Freshness:   optional.Some(time.Duration(sv.freshness) * time.Millisecond),
		Content:     []byte(name.String()),
		Signature:   spec.PlaceholderSignature(),
	}
	wire := spec.EncodeData(data).Join()

	if err := sv.store.Put(name, wire); err != nil {
		return nil, err
	}
	sv.dir.Push(name)
	return wire, sv.dir.Evict(sv.store)
}
