package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/meridianhq/meridian/chains/tron"
)

// RPCResponse represents a JSON-RPC 2.0 response envelope
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// MethodCall describes one smart contract method invocation. It is built
// per call and never stored by the client.
type MethodCall struct {
	// Caller is the issuer of the call, msg.sender
	Caller tron.Address
	// Contract is the contract address
	Contract tron.Address
	// Selector is the method signature string, e.g. "transfer(address,uint256)"
	Selector string
	// Parameter holds the ABI-encoded arguments
	Parameter []byte
}

// ReturnResult is the optional error signal carried by contract call
// responses: either a success flag, or a code plus a (hex-encoded) message
type ReturnResult struct {
	Result  bool   `json:"result,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// BroadcastTxResponse is the node's answer to a broadcast request
type BroadcastTxResponse struct {
	Result  bool               `json:"result,omitempty"`
	Code    string             `json:"code,omitempty"`
	Message string             `json:"message,omitempty"`
	TxID    tron.TransactionID `json:"txid"`
}

// TriggerContractResponse is the node's answer to a state-changing
// contract trigger request
type TriggerContractResponse struct {
	Result      ReturnResult      `json:"result"`
	Transaction *tron.Transaction `json:"transaction"`
}

// QueryContractResponse is the node's answer to a constant contract call
type QueryContractResponse struct {
	Result         ReturnResult      `json:"result"`
	ConstantResult []string          `json:"constant_result"`
	EnergyUsed     uint64            `json:"energy_used"`
	Transaction    *tron.Transaction `json:"transaction,omitempty"`
}

// DecodedResult hex-decodes the constant result entry at the given index
func (r *QueryContractResponse) DecodedResult(index int) ([]byte, error) {
	if index < 0 || index >= len(r.ConstantResult) {
		return nil, ErrInvalidIndex
	}

	raw, err := hex.DecodeString(r.ConstantResult[index])
	if err != nil {
		return nil, &UnknownResponseError{Detail: fmt.Sprintf("constant result %d is not hex: %v", index, err)}
	}
	return raw, nil
}

// TransactionRet is one execution result entry of a confirmed transaction
type TransactionRet struct {
	ContractRet string `json:"contractRet"`
}

// SolidityTransactionInfo is a transaction as seen by the finalized ledger
// view, with its execution result list
type SolidityTransactionInfo struct {
	tron.Transaction
	Ret []TransactionRet `json:"ret"`
}

// AccountResources describes an account's bandwidth and energy
type AccountResources struct {
	FreeNetUsed       uint64 `json:"freeNetUsed,omitempty"`
	FreeNetLimit      uint64 `json:"freeNetLimit,omitempty"`
	NetUsed           uint64 `json:"NetUsed,omitempty"`
	NetLimit          uint64 `json:"NetLimit,omitempty"`
	TotalNetLimit     uint64 `json:"TotalNetLimit,omitempty"`
	TotalNetWeight    uint64 `json:"TotalNetWeight,omitempty"`
	TronPowerLimit    uint64 `json:"tronPowerLimit,omitempty"`
	EnergyUsed        uint64 `json:"EnergyUsed,omitempty"`
	EnergyLimit       uint64 `json:"EnergyLimit,omitempty"`
	TotalEnergyLimit  uint64 `json:"TotalEnergyLimit,omitempty"`
	TotalEnergyWeight uint64 `json:"TotalEnergyWeight,omitempty"`
}

// accountResponse is the subset of /wallet/getaccount the client reads.
// Balance is a pointer: absence is the node's "account never activated"
// signal and must stay distinguishable from a zero balance.
type accountResponse struct {
	Balance *uint64 `json:"balance"`
}

// chainParameter is one committee-set parameter; parameters without a
// value are skipped
type chainParameter struct {
	Key   string `json:"key"`
	Value *int64 `json:"value"`
}

// chainParametersResponse is the /wallet/getchainparameters envelope
type chainParametersResponse struct {
	ChainParameter []chainParameter `json:"chainParameter"`
}

// ResourceReceipt details the resources consumed by a transaction. Fee
// fields are optional: the node omits those that do not apply.
type ResourceReceipt struct {
	EnergyUsage        *uint64 `json:"energy_usage,omitempty"`
	EnergyFee          *uint64 `json:"energy_fee,omitempty"`
	OriginEnergyUsage  *uint64 `json:"origin_energy_usage,omitempty"`
	EnergyUsageTotal   *uint64 `json:"energy_usage_total,omitempty"`
	NetUsage           *uint64 `json:"net_usage,omitempty"`
	NetFee             *uint64 `json:"net_fee,omitempty"`
	Result             string  `json:"result,omitempty"`
	EnergyPenaltyTotal *uint64 `json:"energy_penalty_total,omitempty"`
}

// TransactionInfo is the fee/receipt record of an executed transaction
type TransactionInfo struct {
	ID              string          `json:"id"`
	Fee             uint64          `json:"fee,omitempty"`
	BlockNumber     uint64          `json:"blockNumber"`
	BlockTimestamp  uint64          `json:"blockTimeStamp"`
	ContractResult  []string        `json:"contractResult,omitempty"`
	ContractAddress string          `json:"contract_address,omitempty"`
	Receipt         ResourceReceipt `json:"receipt"`
}
