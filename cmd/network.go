package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/meridianhq/meridian/api"
)

var networkCmd = &cobra.Command{
	Use:   "network [mainnet|shasta|nile]",
	Short: "Show or change network",
	Long: `Show the current network or switch between mainnet and the Shasta
and Nile testnets.

Examples:
  meridian network           # Show current network
  meridian network mainnet   # Switch to mainnet
  meridian network shasta    # Switch to the Shasta testnet
  meridian network nile      # Switch to the Nile testnet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return showCurrentNetwork()
	}

	network := strings.ToLower(args[0])
	if network != api.NetworkMainnet && network != api.NetworkShasta && network != api.NetworkNile {
		return fmt.Errorf("invalid network: %s. Use 'mainnet', 'shasta' or 'nile'", network)
	}

	if err := api.SetCurrentNetwork(network); err != nil {
		return fmt.Errorf("failed to save network selection: %w", err)
	}

	fmt.Printf("🌐 Switched to %s network\n", strings.ToUpper(network))
	if network != api.NetworkMainnet {
		fmt.Println()
		fmt.Println("⚠️  You are now on a TESTNET - coins have no value here")
		fmt.Printf("   Node: %s\n", api.EndpointForNetwork(network))
	}
	return nil
}

func showCurrentNetwork() error {
	network := api.CurrentNetwork()

	switch network {
	case api.NetworkShasta:
		fmt.Printf("🌐 Current network: %s\n", color.YellowString("Shasta Testnet"))
	case api.NetworkNile:
		fmt.Printf("🌐 Current network: %s\n", color.YellowString("Nile Testnet"))
	default:
		fmt.Printf("🌐 Current network: %s\n", color.GreenString("Mainnet"))
	}
	fmt.Printf("   Node: %s\n", api.EndpointForNetwork(network))
	return nil
}
