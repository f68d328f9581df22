package wallet

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/sha3"

	"github.com/meridianhq/meridian/chains/tron"
)

// DefaultDerivationPath is the BIP-44 path for TRON accounts
const DefaultDerivationPath = "m/44'/195'/0'/0/0"

// KeySigner signs transactions with a locally held secp256k1 private key
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address tron.Address
}

// NewKeySigner creates a signer from a raw hex-encoded private key
func NewKeySigner(hexKey string) (*KeySigner, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")

	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return newSigner(key)
}

// NewKeySignerFromMnemonic creates a signer from a BIP-39 mnemonic,
// deriving the key at the standard TRON path m/44'/195'/0'/0/0
func NewKeySignerFromMnemonic(mnemonic, passphrase string) (*KeySigner, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}

	seed := bip39.NewSeed(mnemonic, passphrase)
	keyBytes, err := deriveKey(seed, DefaultDerivationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	key, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to ECDSA key: %w", err)
	}
	return newSigner(key)
}

// GenerateKey creates a signer with a freshly generated private key
func GenerateKey() (*KeySigner, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	ecdsaKey := key.ToECDSA()
	// crypto.Sign compares curve object identity, so use go-ethereum's
	// secp256k1 curve value for the same curve
	ecdsaKey.Curve = crypto.S256()
	return newSigner(ecdsaKey)
}

func newSigner(key *ecdsa.PrivateKey) (*KeySigner, error) {
	address, err := addressFromPublicKey(&key.PublicKey)
	if err != nil {
		return nil, err
	}
	return &KeySigner{key: key, address: address}, nil
}

// addressFromPublicKey derives the account address: the last 20 bytes of
// the Keccak-256 hash of the uncompressed public key, behind the 0x41
// network prefix
func addressFromPublicKey(pub *ecdsa.PublicKey) (tron.Address, error) {
	raw := crypto.FromECDSAPub(pub)
	if len(raw) == 0 {
		return tron.Address{}, fmt.Errorf("invalid public key")
	}

	hash := sha3.NewLegacyKeccak256()
	hash.Write(raw[1:]) // strip the 0x04 encoding prefix
	digest := hash.Sum(nil)
	return tron.NewAddress(digest[12:])
}

// Address returns the signer's account address
func (s *KeySigner) Address() tron.Address {
	return s.address
}

// PrivateKeyHex returns the hex-encoded private key
func (s *KeySigner) PrivateKeyHex() string {
	return hex.EncodeToString(crypto.FromECDSA(s.key))
}

// SignTransaction signs a server-built transaction and appends the
// 65-byte recoverable signature to its signature list. The signing digest
// is the SHA-256 hash of the raw transaction bytes, which is also the
// transaction id.
func (s *KeySigner) SignTransaction(tx *tron.Transaction) error {
	digest, err := signingDigest(tx)
	if err != nil {
		return err
	}

	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	tx.Signature = append(tx.Signature, hex.EncodeToString(sig))
	return nil
}

// SignDigest signs a raw 32-byte digest
func (s *KeySigner) SignDigest(digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, fmt.Errorf("invalid digest length: %d", len(digest))
	}
	return crypto.Sign(digest, s.key)
}

// signingDigest computes the digest to sign, preferring the raw
// transaction bytes over the echoed id and cross-checking the two when
// both are present
func signingDigest(tx *tron.Transaction) ([]byte, error) {
	if tx.RawDataHex == "" {
		if tx.TxID.IsZero() {
			return nil, fmt.Errorf("transaction has neither raw_data_hex nor txID")
		}
		return tx.TxID.Bytes(), nil
	}

	raw, err := tx.RawBytes()
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(raw)
	if !tx.TxID.IsZero() && !bytes.Equal(digest[:], tx.TxID.Bytes()) {
		return nil, fmt.Errorf("raw_data_hex does not hash to txID")
	}
	return digest[:], nil
}
