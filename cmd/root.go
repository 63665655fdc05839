// Package cmd implements commands for the parachain-node executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DrW3RK/parachain-node/cmd/buildspec"
	"github.com/DrW3RK/parachain-node/cmd/key"
)

var rootCmd = &cobra.Command{
	Use:   "parachain-node",
	Short: "Parachain node chain spec tooling",
}

// Execute spawns the main entry point.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	for _, f := range []func(*cobra.Command){
		buildspec.Register,
		key.Register,
	} {
		f(rootCmd)
	}
}
