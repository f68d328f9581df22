package cmd

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meridianhq/meridian/api"
	"github.com/meridianhq/meridian/chains/tron"
	"github.com/meridianhq/meridian/wallet"
)

// signerFlags registers the key source flags on commands that sign
func signerFlags(cmd *cobra.Command) {
	cmd.Flags().String("key", "", "hex-encoded private key (or set MERIDIAN_PRIVATE_KEY)")
	cmd.Flags().String("mnemonic", "", "BIP-39 mnemonic phrase (or set MERIDIAN_MNEMONIC)")
}

// loadSigner builds a signer from --mnemonic, --key, the environment, or
// an interactive prompt, in that order
func loadSigner(cmd *cobra.Command) (*wallet.KeySigner, error) {
	mnemonic, _ := cmd.Flags().GetString("mnemonic")
	if mnemonic == "" {
		mnemonic = os.Getenv("MERIDIAN_MNEMONIC")
	}
	if mnemonic != "" {
		return wallet.NewKeySignerFromMnemonic(mnemonic, "")
	}

	key, _ := cmd.Flags().GetString("key")
	if key == "" {
		key = os.Getenv("MERIDIAN_PRIVATE_KEY")
	}
	if key == "" {
		fmt.Print("Enter your private key: ")
		entered, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return nil, fmt.Errorf("failed to read private key: %w", err)
		}
		fmt.Println() // New line after hidden input
		key = string(entered)
	}

	return wallet.NewKeySigner(key)
}

// awaitConfirmation waits for a transaction to be confirmed, showing a
// spinner while the poll loop runs
func awaitConfirmation(client *api.Client, txid tron.TransactionID) (*api.SolidityTransactionInfo, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("⏳ Waiting for confirmation..."),
		progressbar.OptionSpinnerType(14),
	)

	type result struct {
		info *api.SolidityTransactionInfo
		err  error
	}
	done := make(chan result, 1)
	go func() {
		info, err := client.AwaitConfirmation(txid)
		done <- result{info: info, err: err}
	}()

	for {
		select {
		case res := <-done:
			_ = bar.Finish()
			fmt.Println()
			return res.info, res.err
		case <-time.After(120 * time.Millisecond):
			_ = bar.Add(1)
		}
	}
}
