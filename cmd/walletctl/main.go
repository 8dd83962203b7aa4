// walletctl drives the wallet console forms from a terminal.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/chainsafe/wallet-console/cmd/walletctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "walletctl exited with error: ")
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
