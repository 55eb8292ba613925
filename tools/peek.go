package tools

import (
	"fmt"
	"io"
	"os"
	"time"

	enc "github.com/named-data/ndnode/std/encoding"
	"github.com/named-data/ndnode/std/engine/node"
	"github.com/named-data/ndnode/std/log"
	"github.com/named-data/ndnode/std/ndn"
	"github.com/named-data/ndnode/std/types/optional"
	"github.com/spf13/cobra"
)

// Peek fetches a single Data packet and writes its content out.
type Peek struct {
	opts *Options
	out  io.Writer

	lifetime    int
	mustBeFresh bool
	prefix      bool

	timedOut bool
}

func CmdPeek(opts *Options) *cobra.Command {
	pk := Peek{opts: opts, out: os.Stdout}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "peek NAME",
		Short:   "Fetch one Data packet",
		Long: `Express one Interest and write the content of the returned Data
to stdout. Exits with status 1 on timeout.`,
		Args:    cobra.ExactArgs(1),
		Example: `  ndnode peek /my/example/data -l 1000`,
		RunE:    pk.run,
	}

	cmd.Flags().IntVarP(&pk.lifetime, "lifetime", "l", 4000, "Interest lifetime, in milliseconds")
	cmd.Flags().BoolVarP(&pk.mustBeFresh, "fresh", "f", false, "set MustBeFresh")
	cmd.Flags().BoolVarP(&pk.prefix, "prefix", "p", false, "accept any Data under the name")
	return cmd
}

func (pk *Peek) String() string {
	return "peek"
}

func (pk *Peek) run(cmd *cobra.Command, args []string) error {
	name, err := enc.NameFromStr(args[0])
	if err != nil {
		return fmt.Errorf("invalid name %s: %w", args[0], err)
	}

	n, err := pk.opts.newNode()
	if err != nil {
		return err
	}
	if err = pk.start(n, name); err != nil {
		return err
	}
	if err = n.Run(); err != nil {
		return err
	}

	if pk.timedOut {
		cmd.SilenceUsage = true
		return fmt.Errorf("timeout for %s", name)
	}
	return nil
}

// start expresses the Interest. The node is shut down once it is answered.
func (pk *Peek) start(n *node.Node, name enc.Name) error {
	interest := &ndn.Interest{
		Name:        name,
		Lifetime:    optional.Some(time.Duration(pk.lifetime) * time.Millisecond),
		MustBeFresh: pk.mustBeFresh,
	}
	if !pk.prefix {
		// exact match: no further components
		interest.MaxSuffixComponents = optional.Some(uint64(1))
	}

	_, err := n.SendInterest(interest,
		func(_ *ndn.Interest, data *ndn.Data) {
			log.Debug(pk, "Data received", "name", data.Name)
			if _, err := pk.out.Write(data.Content); err != nil {
				log.Error(pk, "Unable to write content", "err", err)
			}
			n.Shutdown()
		},
		func(interest *ndn.Interest) {
			log.Warn(pk, "Interest timed out", "name", interest.Name)
			pk.timedOut = true
			n.Shutdown()
		})
	return err
}
