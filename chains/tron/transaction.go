package tron

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// TransactionIDLength is the transaction hash size in bytes
const TransactionIDLength = 32

// TransactionID is the SHA-256 hash identifying a transaction. It
// round-trips through its hex string form, which is how the API
// transmits it.
type TransactionID [TransactionIDLength]byte

// ParseTransactionID parses a transaction id from its hex form
func ParseTransactionID(s string) (TransactionID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction id %q: %w", s, err)
	}
	if len(raw) != TransactionIDLength {
		return TransactionID{}, fmt.Errorf("invalid transaction id length: %d", len(raw))
	}

	var id TransactionID
	copy(id[:], raw)
	return id, nil
}

// String returns the lowercase hex representation
func (id TransactionID) String() string {
	return hex.EncodeToString(id[:])
}

// Bytes returns the raw 32-byte hash
func (id TransactionID) Bytes() []byte {
	return id[:]
}

// IsZero reports whether the id is the zero value
func (id TransactionID) IsZero() bool {
	return id == TransactionID{}
}

// MarshalJSON encodes the id as a hex string
func (id TransactionID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON decodes the id from a hex string
func (id *TransactionID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseTransactionID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Transaction is a server-built transaction. The node constructs it, the
// caller attaches signatures, and the same structure is POSTed back for
// broadcast, so unknown contract payloads are kept as raw JSON instead of
// being re-modelled field by field.
type Transaction struct {
	Visible    bool          `json:"visible,omitempty"`
	TxID       TransactionID `json:"txID"`
	RawData    RawData       `json:"raw_data"`
	RawDataHex string        `json:"raw_data_hex,omitempty"`
	Signature  []string      `json:"signature,omitempty"`
}

// RawData holds the unsigned transaction fields
type RawData struct {
	Contract      []ContractEntry `json:"contract"`
	RefBlockBytes string          `json:"ref_block_bytes,omitempty"`
	RefBlockHash  string          `json:"ref_block_hash,omitempty"`
	Expiration    int64           `json:"expiration,omitempty"`
	Timestamp     int64           `json:"timestamp,omitempty"`
	FeeLimit      int64           `json:"fee_limit,omitempty"`
	Data          string          `json:"data,omitempty"`
}

// ContractEntry is one contract/action carried by a transaction. Every
// transaction type (plain transfers included) carries at least one entry.
type ContractEntry struct {
	Type      string            `json:"type"`
	Parameter ContractParameter `json:"parameter"`
}

// ContractParameter wraps the type-specific contract payload. Value is kept
// raw: its shape depends on the contract type and the node schema version,
// and it must survive a sign-then-rebroadcast round trip untouched.
type ContractParameter struct {
	TypeURL string          `json:"type_url,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
}

// Signed reports whether at least one signature is attached
func (t *Transaction) Signed() bool {
	return len(t.Signature) > 0
}

// RawBytes returns the serialized unsigned transaction (the bytes whose
// SHA-256 hash is the transaction id and the signing digest)
func (t *Transaction) RawBytes() ([]byte, error) {
	if t.RawDataHex == "" {
		return nil, fmt.Errorf("transaction has no raw_data_hex")
	}

	raw, err := hex.DecodeString(t.RawDataHex)
	if err != nil {
		return nil, fmt.Errorf("invalid raw_data_hex: %w", err)
	}
	return raw, nil
}
