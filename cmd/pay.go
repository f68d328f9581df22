package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/meridianhq/meridian/api"
	"github.com/meridianhq/meridian/chains/tron"
)

var payCmd = &cobra.Command{
	Use:   "pay [amount] [address]",
	Short: "Send TRX",
	Long: `Send TRX to another address. The amount is given in TRX and may have
up to six decimal places.

The transaction is built by the node, signed locally, broadcast, and then
tracked until the network confirms it.

Examples:
  meridian pay 1.5 TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH
  meridian pay 0.000001 TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH --no-wait`,
	Args: cobra.ExactArgs(2),
	RunE: runPay,
}

func runPay(cmd *cobra.Command, args []string) error {
	amount, err := parseTRX(args[0])
	if err != nil {
		return err
	}

	recipient, err := tron.ParseAddress(args[1])
	if err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	signer, err := loadSigner(cmd)
	if err != nil {
		return err
	}
	sender := signer.Address()

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	// Check balance before building the transaction
	balance, err := client.GetAccountBalance(sender)
	if errors.Is(err, api.ErrAccountNotFound) {
		return fmt.Errorf("sender account %s is not activated", sender)
	}
	if err != nil {
		return fmt.Errorf("failed to check balance: %w", err)
	}
	if balance < amount {
		return fmt.Errorf("insufficient funds: trying to send %s but the balance is only %s", formatTRX(amount), formatTRX(balance))
	}

	fmt.Println("📊 Transaction Details:")
	fmt.Printf("   From:    %s\n", sender)
	fmt.Printf("   To:      %s\n", recipient)
	fmt.Printf("   Amount:  %s\n", formatTRX(amount))
	fmt.Println()

	tx, err := client.Transfer(sender, recipient, amount)
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

	noWait, _ := cmd.Flags().GetBool("no-wait")
	if noWait {
		return nil
	}

	if _, err := awaitConfirmation(client, txid); err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}

	fmt.Printf("%s Transaction confirmed\n", color.GreenString("✅"))
	return nil
}

func init() {
	signerFlags(payCmd)
	payCmd.Flags().Bool("no-wait", false, "Broadcast without waiting for confirmation")
}
