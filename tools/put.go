package tools

import (
	"fmt"
	"io"
	"os"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/log"
	"github.com/named-data/ndnode/std/ndn"
	spec "github.com/named-data/ndnode/std/ndn/spec_2013"
	"github.com/named-data/ndnode/std/object/storage"
	"github.com/named-data/ndnode/std/types/optional"
	"github.com/spf13/cobra"
)

// Put wraps stdin in a Data packet and inserts it into a store.
type Put struct {
	opts *Options
	in   io.Reader

	storeUri  string
	freshness int
}

func CmdPut(opts *Options) *cobra.Command {
	pt := Put{opts: opts, in: os.Stdin}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "put NAME",
		Short:   "Insert Data into a store",
		Long: `Read content from stdin, wrap it in a Data packet with the given
name and insert it into a store for serve to answer from.`,
		Args:    cobra.ExactArgs(1),
		Example: `  ndnode put /my/example/data --store sqlite:///var/lib/ndnode/data.db < data.bin`,
		RunE:    pt.run,
	}

	cmd.Flags().StringVar(&pt.storeUri, "store", "", "store URI: badger://PATH, sqlite://PATH or leveldb://PATH")
	cmd.Flags().IntVar(&pt.freshness, "freshness", 0, "freshness period, in milliseconds (0 to omit)")
	return cmd
}

func (pt *Put) String() string {
	return "put"
}

func (pt *Put) run(_ *cobra.Command, args []string) error {
	name, err := enc.NameFromStr(args[0])
	if err != nil {
		return fmt.Errorf("invalid name %s: %w", args[0], err)
	}

	storeUri := pt.storeUri
	if storeUri == "" {
		storeUri = pt.opts.Config.Store
	}
	store, err := storage.Open(storeUri)
	if err != nil {
		return err
	}
	defer store.Close()

	return pt.put(store, name)
}

func (pt *Put) put(store ndn.Store, name enc.Name) error {
	content, err := io.ReadAll(pt.in)
	if err != nil {
		return fmt.Errorf("unable to read content: %w", err)
	}

	data := &ndn.Data{
		Name:        name,
		ContentType: optional.Some(ndn.ContentTypeBlob),
		Content:     content,
		Signature:   spec.PlaceholderSignature(),
	}
	if pt.freshness > 0 {
		data.Freshness = optional.Some(time.Duration(pt.freshness) * time.Millisecond)
	}

	wire := spec.EncodeData(data)
	if wire.Length() > ndn.MaxNDNPacketSize {
		return ndn.ErrInvalidValue{Item: "content size", Value: len(content)}
	}
	if err = store.Put(name, wire.Join()); err != nil {
		return err
	}

	log.Info(pt, "Data inserted", "name", name, "size", wire.Length())
	return nil
}
