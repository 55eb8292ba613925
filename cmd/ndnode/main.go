package main

import (
	"os"

	"github.com/named-data/ndnode/cmd"
)

func main() {
	if err := cmd.CmdNdnode().Execute(); err != nil {
		os.Exit(1)
	}
}
