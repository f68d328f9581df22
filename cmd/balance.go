package cmd

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meridianhq/meridian/api"
	"github.com/meridianhq/meridian/chains/tron"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check the TRX balance of an account",
	Long: `Check the TRX balance of an account, and optionally its bandwidth
and energy resources.

Examples:
  meridian balance TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH
  meridian balance TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH --resources`,
	Args: cobra.ExactArgs(1),
	RunE: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	address, err := tron.ParseAddress(args[0])
	if err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	balance, err := client.GetAccountBalance(address)
	if errors.Is(err, api.ErrAccountNotFound) {
		fmt.Println("💰 Balance: 0 TRX")
		fmt.Println("   ℹ️ Note: This account is not activated yet. Send TRX to this address to activate it.")
		fmt.Printf("   📍 Address: %s\n", address)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	fmt.Printf("💰 Balance: %s\n", formatTRX(balance))
	fmt.Printf("   📍 Address: %s\n", address)

	showResources, _ := cmd.Flags().GetBool("resources")
	if showResources {
		resources, err := client.GetAccountResources(address)
		if err != nil {
			return fmt.Errorf("failed to fetch resources: %w", err)
		}

		fmt.Println()
		fmt.Println("📊 Resources:")
		fmt.Printf("   Bandwidth: %d / %d (free %d / %d)\n",
			resources.NetUsed, resources.NetLimit, resources.FreeNetUsed, resources.FreeNetLimit)
		fmt.Printf("   Energy:    %d / %d\n", resources.EnergyUsed, resources.EnergyLimit)
	}
	return nil
}

// formatTRX renders an amount of SUN as TRX (1 TRX = 1,000,000 SUN)
func formatTRX(sun uint64) string {
	amount := decimal.NewFromBigInt(new(big.Int).SetUint64(sun), -6)
	return fmt.Sprintf("%s TRX", amount.String())
}

// parseTRX parses a TRX amount into SUN
func parseTRX(s string) (uint64, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}

	sun := amount.Shift(6)
	if sun.Sign() <= 0 || !sun.IsInteger() {
		return 0, fmt.Errorf("amount must be a positive multiple of 0.000001 TRX")
	}
	if !sun.BigInt().IsUint64() {
		return 0, fmt.Errorf("amount too large")
	}
	return sun.BigInt().Uint64(), nil
}

func init() {
	balanceCmd.Flags().Bool("resources", false, "Show bandwidth and energy resources")
}
