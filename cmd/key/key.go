// Package key implements the key sub-command.
package key

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DrW3RK/parachain-node/cmd/common"
	"github.com/DrW3RK/parachain-node/keys"
)

var (
	ss58Format uint16

	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "Key utilities",
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect <public key hex>",
		Short: "Show the account and Aura identities of a public key",
		Args:  cobra.ExactArgs(1),
		Run:   runInspect,
	}
)

func runInspect(cmd *cobra.Command, args []string) {
	if err := Inspect(os.Stdout, args[0], ss58Format); err != nil {
		common.RootLogger().WithModule("key").Error("inspect failed", "err", err)
		os.Exit(1)
	}
}

// Inspect prints the identities derived from a hex public key.
func Inspect(w io.Writer, pubHex string, format uint16) error {
	if !keys.ValidSS58Format(uint64(format)) {
		return fmt.Errorf("ss58 format %d out of range", format)
	}
	pk, err := keys.ParsePublicKey(pubHex)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w,
		"Public key (hex):  %s\nAccount ID:        %s\nAura ID:           %s\nSS58 format:       %d\n",
		pk, pk.Account().SS58(format), pk.Aura().SS58(format), format,
	)
	return err
}

// Register registers the key sub-command.
func Register(parentCmd *cobra.Command) {
	inspectCmd.Flags().Uint16Var(&ss58Format, "ss58-format", keys.DefaultSS58Format, "SS58 address format")
	keyCmd.AddCommand(inspectCmd)
	parentCmd.AddCommand(keyCmd)
}
