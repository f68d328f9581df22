package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/meridianhq/meridian/api"
	"github.com/meridianhq/meridian/chains/tron"
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Interact with smart contracts",
	Long: `Call, query, and estimate smart contract methods.

Method parameters are passed as ABI-encoded hex (encode them with your
ABI tool of choice).

Examples:
  meridian contract query <contract> "symbol()" --caller <address>
  meridian contract call <contract> "transfer(address,uint256)" <hexparams>
  meridian contract estimate <contract> "transfer(address,uint256)" <hexparams> --caller <address>`,
}

var contractQueryCmd = &cobra.Command{
	Use:   "query [contract] [selector] [hexparams]",
	Short: "Invoke a constant (read-only) contract method",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runContractQuery,
}

var contractCallCmd = &cobra.Command{
	Use:   "call [contract] [selector] [hexparams]",
	Short: "Invoke a state-changing contract method",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runContractCall,
}

var contractEstimateCmd = &cobra.Command{
	Use:   "estimate [contract] [selector] [hexparams]",
	Short: "Estimate the energy and fee limit of a contract call",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runContractEstimate,
}

// methodCallFromArgs assembles a MethodCall from command arguments and the
// given caller address
func methodCallFromArgs(caller tron.Address, args []string) (*api.MethodCall, error) {
	contract, err := tron.ParseAddress(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid contract address: %w", err)
	}

	var parameter []byte
	if len(args) == 3 {
		parameter, err = hex.DecodeString(args[2])
		if err != nil {
			return nil, fmt.Errorf("invalid hex parameters: %w", err)
		}
	}

	return &api.MethodCall{
		Caller:    caller,
		Contract:  contract,
		Selector:  args[1],
		Parameter: parameter,
	}, nil
}

// callerAddress resolves the --caller flag
func callerAddress(cmd *cobra.Command) (tron.Address, error) {
	caller, _ := cmd.Flags().GetString("caller")
	if caller == "" {
		return tron.Address{}, fmt.Errorf("--caller is required")
	}
	return tron.ParseAddress(caller)
}

func runContractQuery(cmd *cobra.Command, args []string) error {
	caller, err := callerAddress(cmd)
	if err != nil {
		return err
	}

	call, err := methodCallFromArgs(caller, args)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	resp, err := client.QueryContract(call)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Printf("📗 Constant call: %s\n", call.Selector)
	fmt.Printf("   Energy used: %d\n", resp.EnergyUsed)
	for i := range resp.ConstantResult {
		result, err := resp.DecodedResult(i)
		if err != nil {
			return err
		}
		fmt.Printf("   Result[%d]: %s\n", i, hex.EncodeToString(result))
	}
	return nil
}

func runContractCall(cmd *cobra.Command, args []string) error {
	signer, err := loadSigner(cmd)
	if err != nil {
		return err
	}

	call, err := methodCallFromArgs(signer.Address(), args)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	valueTRX, _ := cmd.Flags().GetString("value")
	var value uint64
	if valueTRX != "" {
		if value, err = parseTRX(valueTRX); err != nil {
			return err
		}
	}
	feeLimit, _ := cmd.Flags().GetUint64("fee-limit")

	tx, err := client.TriggerContract(call, value, feeLimit)
	if err != nil {
		return fmt.Errorf("failed to build contract call: %w", err)
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

	fmt.Printf("%s Contract call confirmed\n", color.GreenString("✅"))
	return nil
}

func runContractEstimate(cmd *cobra.Command, args []string) error {
	caller, err := callerAddress(cmd)
	if err != nil {
		return err
	}

	call, err := methodCallFromArgs(caller, args)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	energy, err := client.EstimateEnergy(call)
	if err != nil {
		return fmt.Errorf("failed to estimate energy: %w", err)
	}

	feeLimit, err := client.EstimateFeeLimit(call)
	if err != nil {
		return fmt.Errorf("failed to estimate fee limit: %w", err)
	}

	fmt.Printf("⚡ Energy:    %d\n", energy)
	fmt.Printf("💰 Fee limit: %d SUN (%s)\n", feeLimit, formatTRX(feeLimit))
	return nil
}

func init() {
	contractCmd.AddCommand(contractQueryCmd)
	contractCmd.AddCommand(contractCallCmd)
	contractCmd.AddCommand(contractEstimateCmd)

	contractQueryCmd.Flags().String("caller", "", "caller address (msg.sender)")
	contractEstimateCmd.Flags().String("caller", "", "caller address (msg.sender)")

	signerFlags(contractCallCmd)
	contractCallCmd.Flags().String("value", "", "TRX to send along with the call")
	contractCallCmd.Flags().Uint64("fee-limit", 0, "fee limit in SUN (0 = estimate)")
	contractCallCmd.Flags().Bool("no-wait", false, "Broadcast without waiting for confirmation")
}
