package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/meridianhq/meridian/chains/tron"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Account operations",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create [address]",
	Short: "Activate a new account",
	Long: `Activate an account on-chain. The signing key pays the activation
fee; the address to activate must be derived in advance (e.g. with
'meridian keygen').

Example:
  meridian account create TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH`,
	Args: cobra.ExactArgs(1),
	RunE: runAccountCreate,
}

func runAccountCreate(cmd *cobra.Command, args []string) error {
	account, err := tron.ParseAddress(args[0])
	if err != nil {
		return fmt.Errorf("invalid account address: %w", err)
	}

	signer, err := loadSigner(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	tx, err := client.CreateAccount(signer.Address(), account)
	if err != nil {
		return fmt.Errorf("failed to build transaction: %w", err)
	}

	if err := signer.SignTransaction(tx); err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	txid, err := client.BroadcastTransaction(tx)
	if err != nil {
		return fmt.Errorf("failed to broadcast transaction: %w", err)
	}
	fmt.Printf("📤 Broadcast: %s\n", txid)

	if _, err := awaitConfirmation(client, txid); err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}

	fmt.Printf("%s Account %s activated\n", color.GreenString("✅"), account)
	return nil
}

func init() {
	accountCmd.AddCommand(accountCreateCmd)
	signerFlags(accountCreateCmd)
}
