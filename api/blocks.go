package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/meridianhq/meridian/chains/tron"
)

// GetLatestBlock returns the most recent block
func (c *Client) GetLatestBlock() (*tron.Block, error) {
	body, err := c.postJSON("/wallet/getnowblock", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	return decodeBlock("getnowblock", body)
}

// GetBlock returns a full block by id or number
func (c *Client) GetBlock(ref tron.BlockRef) (*tron.Block, error) {
	payload := map[string]interface{}{
		"id_or_num": ref.IDOrNum(),
		"detail":    true,
	}

	body, err := c.postJSON("/wallet/getblock", payload)
	if err != nil {
		return nil, err
	}
	return decodeBlock("getblock", body)
}

// GetBlockHeader returns only the header of a block by id or number
func (c *Client) GetBlockHeader(ref tron.BlockRef) (*tron.BlockHeader, error) {
	payload := map[string]interface{}{
		"id_or_num": ref.IDOrNum(),
		"detail":    false,
	}

	body, err := c.postJSON("/wallet/getblock", payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		BlockID string           `json:"blockID"`
		Header  tron.BlockHeader `json:"block_header"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RequestError{Op: "getblock", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if resp.BlockID == "" {
		return nil, &UnknownResponseError{Detail: "no blockID field"}
	}
	return &resp.Header, nil
}

// BlockNumber returns the height of the most recent block through the
// node's JSON-RPC interface
func (c *Client) BlockNumber() (uint64, error) {
	result, err := c.rpcCall("eth_blockNumber", []interface{}{})
	if err != nil {
		return 0, err
	}

	var heightHex string
	if err := json.Unmarshal(result, &heightHex); err != nil {
		return 0, &UnknownResponseError{Detail: fmt.Sprintf("block number is not a string: %s", result)}
	}

	height, err := parseHexInt(heightHex)
	if err != nil {
		return 0, &UnknownResponseError{Detail: fmt.Sprintf("invalid block number %q", heightHex)}
	}
	return height, nil
}

func decodeBlock(op string, body []byte) (*tron.Block, error) {
	var block tron.Block
	if err := json.Unmarshal(body, &block); err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("failed to parse block: %w", err)}
	}
	if block.BlockID == "" {
		return nil, &UnknownResponseError{Detail: "no blockID field"}
	}
	return &block, nil
}

// parseHexInt converts a 0x-prefixed hex string to an integer
func parseHexInt(hexStr string) (uint64, error) {
	hexStr = strings.TrimPrefix(hexStr, "0x")
	return strconv.ParseUint(hexStr, 16, 64)
}
