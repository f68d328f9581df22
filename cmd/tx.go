package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridianhq/meridian/api"
	"github.com/meridianhq/meridian/chains/tron"
)

var txCmd = &cobra.Command{
	Use:   "tx [txid]",
	Short: "Inspect transaction receipts",
	Long: `Show the fee and receipt of an executed transaction, or of every
transaction in a block.

Examples:
  meridian tx 7c2d4206c03a883dd9066d620335dc1be272a8dc733cfa3f6d10308faa37facc
  meridian tx --block 68000000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTx,
}

func runTx(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	blockNum, _ := cmd.Flags().GetUint64("block")
	if blockNum != 0 {
		infos, err := client.GetTxInfoByBlockNum(blockNum)
		if err != nil {
			return fmt.Errorf("failed to fetch transaction info: %w", err)
		}

		fmt.Printf("🧾 %d transactions in block %d\n", len(infos), blockNum)
		for i := range infos {
			fmt.Println()
			printTxInfo(&infos[i])
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("a transaction id or --block is required")
	}

	txid, err := tron.ParseTransactionID(args[0])
	if err != nil {
		return err
	}

	info, err := client.GetTxInfoByID(txid)
	if err != nil {
		return fmt.Errorf("failed to fetch transaction info: %w", err)
	}
	printTxInfo(info)
	return nil
}

func printTxInfo(info *api.TransactionInfo) {
	fmt.Printf("🧾 Transaction %s\n", info.ID)
	fmt.Printf("   Block: %d\n", info.BlockNumber)
	fmt.Printf("   Fee:   %s\n", formatTRX(info.Fee))
	if info.ContractAddress != "" {
		fmt.Printf("   Contract: %s\n", info.ContractAddress)
	}
	if info.Receipt.EnergyUsageTotal != nil {
		fmt.Printf("   Energy used: %d\n", *info.Receipt.EnergyUsageTotal)
	}
	if info.Receipt.NetFee != nil {
		fmt.Printf("   Bandwidth fee: %s\n", formatTRX(*info.Receipt.NetFee))
	}
	if info.Receipt.Result != "" {
		fmt.Printf("   Result: %s\n", info.Receipt.Result)
	}
}

func init() {
	txCmd.Flags().Uint64("block", 0, "List receipts for every transaction in a block")
}
