package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy [name]",
	Short: "Deploy a smart contract",
	Long: `Deploy a compiled smart contract and print its assigned address.

The ABI file holds the JSON ABI array; the bytecode file holds the
hex-encoded compiled contract.

Example:
  meridian deploy MyToken --abi MyToken.abi --bytecode MyToken.hex`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

func runDeploy(cmd *cobra.Command, args []string) error {
	name := args[0]

	abiPath, _ := cmd.Flags().GetString("abi")
	bytecodePath, _ := cmd.Flags().GetString("bytecode")
	if abiPath == "" || bytecodePath == "" {
		return fmt.Errorf("--abi and --bytecode are required")
	}

	abi, err := os.ReadFile(abiPath)
	if err != nil {
		return fmt.Errorf("failed to read ABI file: %w", err)
	}

	bytecodeHex, err := os.ReadFile(bytecodePath)
	if err != nil {
		return fmt.Errorf("failed to read bytecode file: %w", err)
	}
	bytecode, err := hex.DecodeString(strings.TrimSpace(string(bytecodeHex)))
	if err != nil {
		return fmt.Errorf("bytecode file is not hex: %w", err)
	}

	signer, err := loadSigner(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("🚀 Deploying %s (%d bytes of code)...\n", name, len(bytecode))

	address, err := client.DeployContract(string(abi), bytecode, name, signer)
	if err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}

	fmt.Printf("%s Contract deployed\n", color.GreenString("✅"))
	fmt.Printf("   📍 Address: %s\n", address)
	return nil
}

func init() {
	signerFlags(deployCmd)
	deployCmd.Flags().String("abi", "", "path to the JSON ABI file")
	deployCmd.Flags().String("bytecode", "", "path to the hex bytecode file")
}
