package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridianhq/meridian/api"
)

var (
	version = "1.0.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "meridian",
	Aliases: []string{"mer"},
	Short:   "A command-line TRON wallet and smart contract client",
	Long: `Meridian is a command-line wallet and smart contract client for the
TRON network. It builds, signs, broadcasts, and confirms transactions
against a full node, and can call, query, and deploy smart contracts.

Features:
  • TRX transfers with confirmation tracking
  • Smart contract calls, constant queries, and deployment
  • Energy and fee limit estimation
  • Account activation and resource inspection
  • Block and transaction receipt queries
  • Keys from raw hex, generated, or BIP-39 mnemonic
  • Mainnet, Shasta, and Nile support

Keys:
  Pass --key, set MERIDIAN_PRIVATE_KEY, or enter the key when prompted.
  Keys are used in-process only and never stored or transmitted.

Examples:
  meridian keygen                                # Generate a key pair
  meridian balance TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH
  meridian pay 1.5 TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH
  meridian contract query <contract> "name()"    # Constant call
  meridian deploy MyToken --abi abi.json --bytecode code.hex
  meridian network shasta                        # Switch to Shasta testnet`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("node", "", "full node endpoint override")

	// Add subcommands
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(contractCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Meridian v%s\n", version)
	},
}

// newClient builds an API client for the selected network, honoring the
// --node override
func newClient(cmd *cobra.Command) (*api.Client, error) {
	endpoint, _ := cmd.Flags().GetString("node")
	if endpoint == "" {
		endpoint = api.EndpointForNetwork(api.CurrentNetwork())
	}
	return api.NewClient(endpoint)
}
