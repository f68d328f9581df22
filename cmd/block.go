package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridianhq/meridian/chains/tron"
)

var blockCmd = &cobra.Command{
	Use:   "block [number|id]",
	Short: "Inspect blocks",
	Long: `Show the latest block, or a block by number or id.

Examples:
  meridian block                 # Latest block
  meridian block 68000000        # Block by number
  meridian block 0000000004...   # Block by id
  meridian block --height        # Latest height via JSON-RPC
  meridian block 68000000 --header`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlock,
}

func runBlock(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	heightOnly, _ := cmd.Flags().GetBool("height")
	if heightOnly {
		height, err := client.BlockNumber()
		if err != nil {
			return fmt.Errorf("failed to fetch block number: %w", err)
		}
		fmt.Printf("⛓️  Height: %d\n", height)
		return nil
	}

	headerOnly, _ := cmd.Flags().GetBool("header")

	if len(args) == 0 {
		block, err := client.GetLatestBlock()
		if err != nil {
			return fmt.Errorf("failed to fetch latest block: %w", err)
		}
		printBlock(block)
		return nil
	}

	ref := tron.BlockByID(args[0])
	if num, err := strconv.ParseUint(args[0], 10, 64); err == nil {
		ref = tron.BlockByNumber(num)
	}

	if headerOnly {
		header, err := client.GetBlockHeader(ref)
		if err != nil {
			return fmt.Errorf("failed to fetch block header: %w", err)
		}
		printHeader(header)
		return nil
	}

	block, err := client.GetBlock(ref)
	if err != nil {
		return fmt.Errorf("failed to fetch block: %w", err)
	}
	printBlock(block)
	return nil
}

func printBlock(block *tron.Block) {
	fmt.Printf("🧱 Block %d\n", block.Number())
	fmt.Printf("   Id:           %s\n", block.BlockID)
	fmt.Printf("   Time:         %s\n", formatBlockTime(block.Header.RawData.Timestamp))
	fmt.Printf("   Transactions: %d\n", len(block.Transactions))
}

func printHeader(header *tron.BlockHeader) {
	fmt.Printf("🧱 Block %d\n", header.RawData.Number)
	fmt.Printf("   Time:    %s\n", formatBlockTime(header.RawData.Timestamp))
	fmt.Printf("   Parent:  %s\n", header.RawData.ParentHash)
	fmt.Printf("   Witness: %s\n", header.RawData.WitnessAddress)
}

// formatBlockTime renders a millisecond block timestamp
func formatBlockTime(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(time.RFC3339)
}

func init() {
	blockCmd.Flags().Bool("header", false, "Fetch the header only")
	blockCmd.Flags().Bool("height", false, "Print the latest height via JSON-RPC")
}
