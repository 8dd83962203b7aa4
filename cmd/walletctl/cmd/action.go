package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainsafe/wallet-console/pkg/console"
	"github.com/chainsafe/wallet-console/pkg/operation"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the wallet balance",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return withSession(c.Context(), func(ctx context.Context, s *console.Session) error {
			info, err := s.RefreshBalance(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", label("address:"), info.Address)
			fmt.Fprintf(out, "%s %s\n", label("network:"), info.Network)
			fmt.Fprintf(out, "%s %s %s\n", label("balance:"), info.Balance.Value, info.Balance.Symbol)
			return nil
		})
	},
}

var airdropCmd = &cobra.Command{
	Use:     "airdrop [amount]",
	Short:   "Request an airdrop to the wallet",
	PreRunE: exactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runForm(c.Context(), console.FormAirdrop, console.AirdropInput{Amount: args[0]})
	},
}

var sendCmd = &cobra.Command{
	Use:     "send [recipient] [amount]",
	Short:   "Send native tokens from the wallet",
	PreRunE: exactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		return runForm(c.Context(), console.FormTransfer, console.TransferInput{Recipient: args[0], Amount: args[1]})
	},
}

var signCmd = &cobra.Command{
	Use:     "sign [message]",
	Short:   "Sign and verify a message with the wallet",
	PreRunE: exactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runForm(c.Context(), console.FormSign, console.SignInput{Message: args[0]})
	},
}

func exactArgs(n int) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: expected %d, got %d", ErrInvalidArgs, n, len(args))
		}
		return nil
	}
}

// runForm submits one form and waits for its outcome. The terminal sink has
// already printed the notification when Run returns.
func runForm(ctx context.Context, form string, input any) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return withSession(ctx, func(ctx context.Context, s *console.Session) error {
		o, err := s.Run(ctx, form, raw)
		if err != nil {
			return err
		}
		if o.Phase != operation.PhaseSucceeded {
			return fmt.Errorf("%w: %s", ErrOperationFailed, o.Kind)
		}
		printResult(o.Result)
		return nil
	})
}

func printResult(result any) {
	switch r := result.(type) {
	case console.AirdropResult:
		fmt.Fprintf(out, "%s %s\n", label("tx:"), r.TxID)
		fmt.Fprintf(out, "%s %s\n", label("balance:"), r.Balance)
	case console.TransferResult:
		fmt.Fprintf(out, "%s %s\n", label("tx:"), r.TxID)
		fmt.Fprintf(out, "%s %s\n", label("balance:"), r.Balance)
	case console.SignResult:
		fmt.Fprintf(out, "%s %s\n", label("signer:"), r.Signer)
		fmt.Fprintf(out, "%s %s\n", label("signature:"), r.Signature)
	}
}
