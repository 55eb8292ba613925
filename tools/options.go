package tools

import (
	"os"

	"github.com/named-data/ndnode/std/engine"
	"github.com/named-data/ndnode/std/engine/node"
	"github.com/named-data/ndnode/std/log"
	"github.com/named-data/ndnode/std/ndn"
	"github.com/named-data/ndnode/std/utils/toolutils"
	"github.com/spf13/cobra"
)

// Options are the settings shared by every command.
type Options struct {
	ConfigFile string
	LogLevel   string
	Transport  string

	Config *toolutils.ToolConfig
}

func (o *Options) String() string {
	return "options"
}

// AddFlags registers the persistent flags on the root command.
func (o *Options) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "", "configuration file (YAML, or TOML with a .toml extension)")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "", "log level (TRACE, DEBUG, INFO, WARN, ERROR)")
	cmd.PersistentFlags().StringVar(&o.Transport, "transport", "", "forwarder transport URI (default from client.conf)")
}

// Load reads the configuration file, applies the flags on top and sets up
// the default logger.
func (o *Options) Load() error {
	config := toolutils.DefaultToolConfig()
	if o.ConfigFile != "" {
		if err := toolutils.ReadConfig(config, o.ConfigFile); err != nil {
			return err
		}
		config.FillDefaults()
	}
	if o.LogLevel != "" {
		config.LogLevel = o.LogLevel
	}
	if o.Transport != "" {
		config.Transport = o.Transport
	}

	level, err := config.Level()
	if err != nil {
		return err
	}
	if config.LogJson {
		log.SetDefault(log.NewJson(os.Stderr))
	} else {
		log.SetDefault(log.NewText(os.Stderr))
	}
	log.Default().SetLevel(level)

	o.Config = config
	return nil
}

// newFace creates the face of the configured transport.
func (o *Options) newFace() (ndn.Face, error) {
	if o.Config.Transport != "" {
		return engine.NewFace(o.Config.Transport)
	}
	return engine.NewDefaultFace()
}

// newNode creates a node on the configured transport.
func (o *Options) newNode() (*node.Node, error) {
	face, err := o.newFace()
	if err != nil {
		return nil, err
	}
	n := engine.NewNode(face)
	n.StrictPrefixMatch = o.Config.StrictPrefixMatch
	return n, nil
}
