package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"github.com/meridianhq/meridian/wallet"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new key pair",
	Long: `Generate a new key pair and print the address and private key.

With --mnemonic, a BIP-39 recovery phrase is generated instead and the key
is derived at the standard TRON path (m/44'/195'/0'/0/0).

Keys are generated locally and never stored or transmitted. Save the
output somewhere safe.

Examples:
  meridian keygen
  meridian keygen --mnemonic`,
	RunE: runKeygen,
}

func runKeygen(cmd *cobra.Command, args []string) error {
	useMnemonic, _ := cmd.Flags().GetBool("mnemonic")

	var signer *wallet.KeySigner
	if useMnemonic {
		entropy, err := bip39.NewEntropy(128)
		if err != nil {
			return fmt.Errorf("failed to generate entropy: %w", err)
		}
		mnemonic, err := bip39.NewMnemonic(entropy)
		if err != nil {
			return fmt.Errorf("failed to generate mnemonic: %w", err)
		}

		signer, err = wallet.NewKeySignerFromMnemonic(mnemonic, "")
		if err != nil {
			return err
		}

		fmt.Println("🔑 New wallet generated")
		fmt.Printf("   Recovery phrase: %s\n", color.YellowString(mnemonic))
	} else {
		var err error
		signer, err = wallet.GenerateKey()
		if err != nil {
			return err
		}
		fmt.Println("🔑 New key pair generated")
	}

	fmt.Printf("   📍 Address:     %s\n", signer.Address())
	fmt.Printf("   🔐 Private key: %s\n", color.YellowString(signer.PrivateKeyHex()))
	fmt.Println()
	fmt.Println("⚠️  Anyone with the private key controls the funds. Store it safely.")
	fmt.Println("💡 The account appears on-chain once it receives TRX or is activated.")
	return nil
}

func init() {
	keygenCmd.Flags().Bool("mnemonic", false, "Generate a BIP-39 recovery phrase")
}
