package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// hdKey represents a hierarchical deterministic key
type hdKey struct {
	privateKey []byte
	publicKey  []byte
	chainCode  []byte
	depth      uint8
}

// hardenedOffset marks hardened child numbers (BIP-32)
const hardenedOffset = 0x80000000

// deriveKey derives a private key from a BIP-39 seed along a derivation
// path like m/44'/195'/0'/0/0
func deriveKey(seed []byte, path string) ([]byte, error) {
	key, err := newMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, fmt.Errorf("invalid derivation path: %s", path)
	}

	for _, part := range parts[1:] {
		childNum, err := parseChildNum(part)
		if err != nil {
			return nil, fmt.Errorf("failed to parse child number: %w", err)
		}

		key, err = deriveChild(key, childNum)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child: %w", err)
		}
	}
	return key.privateKey, nil
}

// newMasterKey creates a master key from seed
func newMasterKey(seed []byte) (*hdKey, error) {
	// HMAC-SHA512 with "Bitcoin seed" as key, per BIP-32
	hash := hmacSHA512([]byte("Bitcoin seed"), seed)

	privateKey := hash[:32]
	chainCode := hash[32:]

	if !isValidPrivateKey(privateKey) {
		return nil, fmt.Errorf("invalid private key")
	}

	return &hdKey{
		privateKey: privateKey,
		publicKey:  derivePublicKey(privateKey),
		chainCode:  chainCode,
		depth:      0,
	}, nil
}

// deriveChild derives a child key from parent
func deriveChild(parent *hdKey, childNum uint32) (*hdKey, error) {
	var data []byte
	if childNum >= hardenedOffset {
		data = append([]byte{0x00}, parent.privateKey...)
	} else {
		data = parent.publicKey
	}

	childNumBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(childNumBytes, childNum)
	data = append(data, childNumBytes...)

	hash := hmacSHA512(parent.chainCode, data)
	il := hash[:32]
	ir := hash[32:]

	// child key = (parent key + IL) mod n
	parentKeyInt := new(big.Int).SetBytes(parent.privateKey)
	ilInt := new(big.Int).SetBytes(il)

	childKeyInt := new(big.Int).Add(parentKeyInt, ilInt)
	childKeyInt.Mod(childKeyInt, crypto.S256().Params().N)

	if childKeyInt.Sign() == 0 {
		return nil, fmt.Errorf("invalid child key")
	}

	childKey := childKeyInt.Bytes()
	if len(childKey) < 32 {
		padded := make([]byte, 32)
		copy(padded[32-len(childKey):], childKey)
		childKey = padded
	}

	return &hdKey{
		privateKey: childKey,
		publicKey:  derivePublicKey(childKey),
		chainCode:  ir,
		depth:      parent.depth + 1,
	}, nil
}

// derivePublicKey derives the compressed public key from a private key
func derivePublicKey(privateKey []byte) []byte {
	curve := crypto.S256()
	x, y := curve.ScalarBaseMult(privateKey)

	prefix := byte(0x02)
	if y.Bit(0) == 1 {
		prefix = 0x03
	}

	compressed := make([]byte, 33)
	compressed[0] = prefix
	x.FillBytes(compressed[1:])
	return compressed
}

// hmacSHA512 computes HMAC-SHA512
func hmacSHA512(key, data []byte) []byte {
	h := hmac.New(sha512.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// isValidPrivateKey checks that a private key is in the valid scalar range
func isValidPrivateKey(privateKey []byte) bool {
	if len(privateKey) != 32 {
		return false
	}

	keyInt := new(big.Int).SetBytes(privateKey)
	if keyInt.Sign() == 0 {
		return false
	}
	return keyInt.Cmp(crypto.S256().Params().N) < 0
}

// parseChildNum parses one derivation path segment, with ' marking a
// hardened index
func parseChildNum(part string) (uint32, error) {
	hardened := strings.HasSuffix(part, "'")
	if hardened {
		part = part[:len(part)-1]
	}

	num, err := strconv.ParseUint(part, 10, 32)
	if err != nil {
		return 0, err
	}
	if num >= hardenedOffset {
		return 0, fmt.Errorf("child number out of range: %d", num)
	}

	if hardened {
		num += hardenedOffset
	}
	return uint32(num), nil
}
