package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/meridianhq/meridian/chains/tron"
)

// energyFeeParameter is the chain parameter pricing one unit of energy in SUN
const energyFeeParameter = "getEnergyFee"

// Signer is the external signing capability consumed by DeployContract. It
// is invoked exactly once per deploy flow.
type Signer interface {
	// Address returns the signer's account address
	Address() tron.Address
	// SignTransaction attaches a signature to a server-built transaction
	SignTransaction(tx *tron.Transaction) error
}

// TriggerContract builds an unsigned transaction invoking a state-changing
// contract method. value is the amount of TRX in SUN sent along with the
// call. feeLimit caps the call's resource cost in SUN; pass 0 to have it
// estimated first, which costs an extra two round trips.
func (c *Client) TriggerContract(call *MethodCall, value uint64, feeLimit uint64) (*tron.Transaction, error) {
	if feeLimit == 0 {
		estimated, err := c.EstimateFeeLimit(call)
		if err != nil {
			return nil, err
		}
		feeLimit = estimated
	}

	payload := map[string]interface{}{
		"owner_address":     call.Caller.Hex(),
		"contract_address":  call.Contract.Hex(),
		"function_selector": call.Selector,
		"parameter":         hex.EncodeToString(call.Parameter),
		"fee_limit":         feeLimit,
		"call_value":        value,
	}

	body, err := c.postJSON("/wallet/triggersmartcontract", payload)
	if err != nil {
		return nil, err
	}

	var resp TriggerContractResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RequestError{Op: "triggersmartcontract", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if resp.Result.Code != "" {
		return nil, &BroadcastError{Code: resp.Result.Code, Message: decodeHexMessage(resp.Result.Message)}
	}
	if resp.Transaction == nil {
		return nil, &UnknownResponseError{Detail: "no transaction field"}
	}
	return resp.Transaction, nil
}

// QueryContract invokes a constant (read-only) contract method. An empty
// constant result list yields ErrContractNotFound; an explicit error code
// in the result object yields a ContractQueryError.
func (c *Client) QueryContract(call *MethodCall) (*QueryContractResponse, error) {
	payload := map[string]interface{}{
		"owner_address":     call.Caller.Hex(),
		"contract_address":  call.Contract.Hex(),
		"function_selector": call.Selector,
		"parameter":         hex.EncodeToString(call.Parameter),
	}

	body, err := c.postJSON("/wallet/triggerconstantcontract", payload)
	if err != nil {
		return nil, err
	}

	var resp QueryContractResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RequestError{Op: "triggerconstantcontract", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if len(resp.ConstantResult) == 0 {
		return nil, ErrContractNotFound
	}
	if resp.Result.Code != "" {
		return nil, &ContractQueryError{Code: resp.Result.Code, Message: decodeHexMessage(resp.Result.Message)}
	}
	return &resp, nil
}

// EstimateEnergy estimates the energy cost of a contract call by running
// it as a constant call
func (c *Client) EstimateEnergy(call *MethodCall) (uint64, error) {
	resp, err := c.QueryContract(call)
	if err != nil {
		return 0, err
	}
	return resp.EnergyUsed, nil
}

// EstimateFeeLimit estimates the fee limit of a contract call in SUN:
// estimated energy times the current energy price from the chain
// parameters. The multiplication is overflow-checked.
func (c *Client) EstimateFeeLimit(call *MethodCall) (uint64, error) {
	params, err := c.GetChainParameters()
	if err != nil {
		return 0, err
	}

	energyFee, ok := params[energyFeeParameter]
	if !ok {
		return 0, &UnknownResponseError{Detail: fmt.Sprintf("%s not found", energyFeeParameter)}
	}
	if energyFee < 0 {
		return 0, &UnknownResponseError{Detail: fmt.Sprintf("%s is negative: %d", energyFeeParameter, energyFee)}
	}

	energy, err := c.EstimateEnergy(call)
	if err != nil {
		return 0, err
	}

	price := uint64(energyFee)
	if energy != 0 && price > math.MaxUint64/energy {
		return 0, &UnknownResponseError{Detail: fmt.Sprintf("fee limit overflows: %d energy at %d sun each", energy, price)}
	}
	return energy * price, nil
}

// DeployContract deploys a smart contract and returns its freshly assigned
// address. It orchestrates the full lifecycle: request construction,
// signing through the given signer, broadcast, confirmation wait, and
// extraction of the new address from the confirmed transaction.
func (c *Client) DeployContract(abi string, bytecode []byte, name string, deployer Signer) (tron.Address, error) {
	payload := map[string]interface{}{
		"abi":           abi,
		"bytecode":      hex.EncodeToString(bytecode),
		"name":          name,
		"owner_address": deployer.Address().String(),
		"visible":       true,
	}

	body, err := c.postJSON("/wallet/deploycontract", payload)
	if err != nil {
		return tron.Address{}, err
	}

	tx, err := decodeTransaction("deploycontract", body)
	if err != nil {
		return tron.Address{}, err
	}

	if err := deployer.SignTransaction(tx); err != nil {
		return tron.Address{}, &SignerError{Err: err}
	}

	txid, err := c.BroadcastTransaction(tx)
	if err != nil {
		return tron.Address{}, err
	}

	info, err := c.AwaitConfirmation(txid)
	if err != nil {
		return tron.Address{}, err
	}
	return deployedContractAddress(info)
}

// deployedContractAddress descends into the first contract entry of a
// confirmed deployment to extract the assigned contract address. Each
// missing nesting level is reported by name: the node owns this schema and
// a bare parse failure would hide which part drifted.
func deployedContractAddress(info *SolidityTransactionInfo) (tron.Address, error) {
	if len(info.RawData.Contract) == 0 {
		return tron.Address{}, ErrContractNotFound
	}

	value := info.RawData.Contract[0].Parameter.Value
	if len(value) == 0 || string(value) == "null" {
		return tron.Address{}, &UnknownResponseError{Detail: "no value field"}
	}

	var created struct {
		NewContract *struct {
			ContractAddress string `json:"contract_address"`
		} `json:"new_contract"`
	}
	if err := json.Unmarshal(value, &created); err != nil {
		return tron.Address{}, &UnknownResponseError{Detail: fmt.Sprintf("malformed value field: %v", err)}
	}
	if created.NewContract == nil {
		return tron.Address{}, &UnknownResponseError{Detail: "no new_contract field"}
	}
	if created.NewContract.ContractAddress == "" {
		return tron.Address{}, &UnknownResponseError{Detail: "no contract_address field"}
	}

	addr, err := tron.ParseAddress(created.NewContract.ContractAddress)
	if err != nil {
		return tron.Address{}, &UnknownResponseError{Detail: fmt.Sprintf("invalid contract address %q", created.NewContract.ContractAddress)}
	}
	return addr, nil
}
