package tron

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	// AddressLength is the raw address size including the network prefix
	AddressLength = 21

	// AddressPrefix is the mainnet address version byte (0x41, "T" in base58)
	AddressPrefix = 0x41
)

// Address is a 21-byte TRON account address. The canonical textual form is
// Base58Check with a 0x41 version byte; the wire form used in API requests
// is plain hex. Equality is byte-exact.
type Address [AddressLength]byte

// NewAddress builds an address from a 20-byte account hash
func NewAddress(hash []byte) (Address, error) {
	if len(hash) != AddressLength-1 {
		return Address{}, fmt.Errorf("invalid account hash length: %d", len(hash))
	}

	var addr Address
	addr[0] = AddressPrefix
	copy(addr[1:], hash)
	return addr, nil
}

// ParseAddress parses an address from its Base58Check form (T...) or its
// 42-character hex form (41...)
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("empty address")
	}

	// Hex form: 21 bytes, 0x41 prefix
	if len(s) == AddressLength*2 {
		raw, err := hex.DecodeString(s)
		if err == nil {
			if raw[0] != AddressPrefix {
				return Address{}, fmt.Errorf("invalid address prefix: %#x", raw[0])
			}
			var addr Address
			copy(addr[:], raw)
			return addr, nil
		}
	}

	// Base58Check form
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if version != AddressPrefix {
		return Address{}, fmt.Errorf("invalid address prefix: %#x", version)
	}
	return NewAddress(payload)
}

// String returns the Base58Check representation (T...)
func (a Address) String() string {
	return base58.CheckEncode(a[1:], a[0])
}

// Hex returns the lowercase hex representation (41...)
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns the raw 21-byte address
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero reports whether the address is the zero value
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalJSON encodes the address in Base58Check form
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both the Base58Check and the hex form
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	addr, err := ParseAddress(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
