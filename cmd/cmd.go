package cmd

import (
	"github.com/named-data/ndnode/std/utils"
	"github.com/named-data/ndnode/tools"
	"github.com/spf13/cobra"
)

// CmdNdnode is the root command.
func CmdNdnode() *cobra.Command {
	opts := &tools.Options{}

	cmd := &cobra.Command{
		Use:     "ndnode",
		Short:   "NDN client node",
		Long:    "Named Data Networking client node and tools",
		Version: utils.Version,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return opts.Load()
		},
	}

	cobra.EnableCommandSorting = false
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.PersistentFlags().BoolP("help", "h", false, "Print usage")
	cmd.PersistentFlags().Lookup("help").Hidden = true
	opts.AddFlags(cmd)

	cmd.AddGroup(&cobra.Group{ID: "tools", Title: "Tools"})
	cmd.AddCommand(tools.CmdPeek(opts))
	cmd.AddCommand(tools.CmdServe(opts))
	cmd.AddCommand(tools.CmdPut(opts))

	return cmd
}
