package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/meridianhq/meridian/chains/tron"
)

// contractRetSuccess is the execution result marking a confirmed
// transaction as successful
const contractRetSuccess = "SUCCESS"

// transferExtraData is a fixed 64-byte marker attached to transfer
// transactions for wire compatibility; it carries no meaning for callers
var transferExtraData = strings.Repeat("72", 64)

// BroadcastTransaction broadcasts a signed transaction and returns the
// echoed transaction id. A response carrying an error code is surfaced as
// a BroadcastError with its message hex-decoded to UTF-8 when possible.
func (c *Client) BroadcastTransaction(tx *tron.Transaction) (tron.TransactionID, error) {
	if len(tx.RawData.Contract) == 0 {
		return tron.TransactionID{}, fmt.Errorf("transaction has no contract entries")
	}

	body, err := c.postJSON("/wallet/broadcasttransaction", tx)
	if err != nil {
		return tron.TransactionID{}, err
	}

	var resp BroadcastTxResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return tron.TransactionID{}, &RequestError{Op: "broadcasttransaction", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if resp.Code != "" {
		return tron.TransactionID{}, &BroadcastError{Code: resp.Code, Message: decodeHexMessage(resp.Message)}
	}
	return resp.TxID, nil
}

// Transfer builds an unsigned TRX transfer transaction. The amount is
// denominated in SUN (1 TRX = 1,000,000 SUN).
func (c *Client) Transfer(from, to tron.Address, amount uint64) (*tron.Transaction, error) {
	payload := map[string]interface{}{
		"owner_address": from.Hex(),
		"to_address":    to.Hex(),
		"amount":        amount,
		"extra_data":    transferExtraData,
	}

	body, err := c.postJSON("/wallet/createtransaction", payload)
	if err != nil {
		return nil, err
	}
	return decodeTransaction("createtransaction", body)
}

// CreateAccount builds an unsigned account-activation transaction. The
// payer covers the activation fee; the account address must be derived in
// advance (e.g. from an existing private key).
func (c *Client) CreateAccount(payer, account tron.Address) (*tron.Transaction, error) {
	payload := map[string]interface{}{
		"owner_address":   payer.Hex(),
		"account_address": account.Hex(),
	}

	body, err := c.postJSON("/wallet/createaccount", payload)
	if err != nil {
		return nil, err
	}
	return decodeTransaction("createaccount", body)
}

// SolidityGetTxByID looks a transaction up in the finalized ledger view.
// It returns (nil, nil) when the node does not know the transaction yet;
// that is a probe result, not an error.
func (c *Client) SolidityGetTxByID(txid tron.TransactionID) (*SolidityTransactionInfo, error) {
	payload := map[string]interface{}{
		"value": txid.String(),
	}

	body, err := c.postJSON("/walletsolidity/gettransactionbyid", payload)
	if err != nil {
		return nil, err
	}

	// The node answers an unknown or unconfirmed id with an object lacking
	// the txID field
	var probe struct {
		TxID string `json:"txID"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, &RequestError{Op: "gettransactionbyid", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if probe.TxID == "" {
		return nil, nil
	}

	var info SolidityTransactionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, &UnknownResponseError{Detail: fmt.Sprintf("malformed transaction info: %v", err)}
	}
	return &info, nil
}

// AwaitConfirmation polls the finalized ledger view until the transaction
// appears, sleeping the configured poll interval between attempts. The
// loop is unbounded; use AwaitConfirmationContext for a deadline.
func (c *Client) AwaitConfirmation(txid tron.TransactionID) (*SolidityTransactionInfo, error) {
	return c.AwaitConfirmationContext(context.Background(), txid)
}

// AwaitConfirmationContext is AwaitConfirmation with cancellation. It
// returns as soon as the transaction is found: with the info when the
// first execution result is SUCCESS, with a TxFailedError otherwise.
// Only "not yet observed" is retried: an explicit failure or a transport
// error ends the loop immediately.
func (c *Client) AwaitConfirmationContext(ctx context.Context, txid tron.TransactionID) (*SolidityTransactionInfo, error) {
	for {
		info, err := c.SolidityGetTxByID(txid)
		if err != nil {
			return nil, err
		}

		if info != nil {
			if len(info.Ret) > 0 && info.Ret[0].ContractRet == contractRetSuccess {
				return info, nil
			}
			reason := "empty ret"
			if len(info.Ret) > 0 {
				reason = info.Ret[0].ContractRet
			}
			return nil, &TxFailedError{Reason: reason}
		}

		timer := time.NewTimer(c.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// GetAccountBalance returns the TRX balance of an account in SUN
// (including frozen balance). A response without a balance field means the
// account was never activated and yields ErrAccountNotFound.
func (c *Client) GetAccountBalance(account tron.Address) (uint64, error) {
	payload := map[string]interface{}{
		"address": account.Hex(),
	}

	body, err := c.postJSON("/wallet/getaccount", payload)
	if err != nil {
		return 0, err
	}

	var resp accountResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, &RequestError{Op: "getaccount", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if resp.Balance == nil {
		return 0, ErrAccountNotFound
	}
	return *resp.Balance, nil
}

// GetAccountResources returns the bandwidth and energy state of an account
func (c *Client) GetAccountResources(account tron.Address) (*AccountResources, error) {
	payload := map[string]interface{}{
		"address": account.Hex(),
	}

	body, err := c.postJSON("/wallet/getaccountresource", payload)
	if err != nil {
		return nil, err
	}

	var resources AccountResources
	if err := json.Unmarshal(body, &resources); err != nil {
		return nil, &RequestError{Op: "getaccountresource", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return &resources, nil
}

// GetChainParameters returns all committee-set chain parameters, skipping
// parameters the node reports without a value
func (c *Client) GetChainParameters() (map[string]int64, error) {
	body, err := c.get("/wallet/getchainparameters")
	if err != nil {
		return nil, err
	}

	var resp chainParametersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RequestError{Op: "getchainparameters", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	params := make(map[string]int64, len(resp.ChainParameter))
	for _, p := range resp.ChainParameter {
		if p.Value == nil {
			continue
		}
		params[p.Key] = *p.Value
	}
	return params, nil
}

// GetTxInfoByID returns the fee/receipt record of a transaction
func (c *Client) GetTxInfoByID(txid tron.TransactionID) (*TransactionInfo, error) {
	payload := map[string]interface{}{
		"value": txid.String(),
	}

	body, err := c.postJSON("/wallet/gettransactioninfobyid", payload)
	if err != nil {
		return nil, err
	}

	var info TransactionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, &RequestError{Op: "gettransactioninfobyid", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return &info, nil
}

// GetTxInfoByBlockNum returns the fee/receipt records of all transactions
// in a block
func (c *Client) GetTxInfoByBlockNum(blockNum uint64) ([]TransactionInfo, error) {
	payload := map[string]interface{}{
		"num": blockNum,
	}

	body, err := c.postJSON("/wallet/gettransactioninfobyblocknum", payload)
	if err != nil {
		return nil, err
	}

	var infos []TransactionInfo
	if err := json.Unmarshal(body, &infos); err != nil {
		return nil, &RequestError{Op: "gettransactioninfobyblocknum", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return infos, nil
}

// decodeTransaction unmarshals a server-built transaction
func decodeTransaction(op string, body []byte) (*tron.Transaction, error) {
	var tx tron.Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("failed to parse transaction: %w", err)}
	}
	if len(tx.RawData.Contract) == 0 {
		return nil, &UnknownResponseError{Detail: "no contract entries in transaction"}
	}
	return &tx, nil
}

// decodeHexMessage decodes a hex-encoded error message to UTF-8, falling
// back to the raw message and then to a generic placeholder
func decodeHexMessage(message string) string {
	if message == "" {
		return "Unknown error"
	}
	if raw, err := hex.DecodeString(message); err == nil && utf8.Valid(raw) {
		return string(raw)
	}
	return message
}
