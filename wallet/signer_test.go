package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/meridianhq/meridian/chains/tron"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGenerateKey(t *testing.T) {
	signer, err := GenerateKey()
	require.NoError(t, err)

	addr := signer.Address()
	require.Equal(t, byte(tron.AddressPrefix), addr.Bytes()[0])
	require.True(t, strings.HasPrefix(addr.String(), "T"))

	// Textual form round-trips
	parsed, err := tron.ParseAddress(addr.String())
	require.NoError(t, err)
	require.Equal(t, addr, parsed)

	// The key exports and imports to the same identity
	restored, err := NewKeySigner(signer.PrivateKeyHex())
	require.NoError(t, err)
	require.Equal(t, addr, restored.Address())
}

func TestNewKeySignerRejectsBadKeys(t *testing.T) {
	for _, input := range []string{"", "zz", "abcd", strings.Repeat("00", 32)} {
		_, err := NewKeySigner(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestNewKeySignerAcceptsPrefixedKey(t *testing.T) {
	signer, err := GenerateKey()
	require.NoError(t, err)

	prefixed, err := NewKeySigner("0x" + signer.PrivateKeyHex())
	require.NoError(t, err)
	require.Equal(t, signer.Address(), prefixed.Address())
}

func TestSignTransaction(t *testing.T) {
	signer, err := GenerateKey()
	require.NoError(t, err)

	rawData := []byte{0x0a, 0x02, 0xa1, 0xb2}
	digest := sha256.Sum256(rawData)

	var txid tron.TransactionID
	copy(txid[:], digest[:])

	tx := &tron.Transaction{
		TxID:       txid,
		RawDataHex: hex.EncodeToString(rawData),
		RawData: tron.RawData{
			Contract: []tron.ContractEntry{{Type: "TransferContract"}},
		},
	}

	require.NoError(t, signer.SignTransaction(tx))
	require.Len(t, tx.Signature, 1)

	sig, err := hex.DecodeString(tx.Signature[0])
	require.NoError(t, err)
	require.Len(t, sig, 65)

	// The signature recovers to the signer's public key
	pub, err := crypto.SigToPub(digest[:], sig)
	require.NoError(t, err)

	recovered, err := addressFromPublicKey(pub)
	require.NoError(t, err)
	require.Equal(t, signer.Address(), recovered)
}

func TestSignTransactionDigestMismatch(t *testing.T) {
	signer, err := GenerateKey()
	require.NoError(t, err)

	var txid tron.TransactionID
	txid[0] = 0xde // does not match the raw data hash

	tx := &tron.Transaction{TxID: txid, RawDataHex: "0a02a1b2"}
	require.Error(t, signer.SignTransaction(tx))
}

func TestSignTransactionWithoutRawData(t *testing.T) {
	signer, err := GenerateKey()
	require.NoError(t, err)

	// Falls back to signing the echoed id when no raw bytes are present
	var txid tron.TransactionID
	txid[0] = 0x01
	tx := &tron.Transaction{TxID: txid}
	require.NoError(t, signer.SignTransaction(tx))
	require.Len(t, tx.Signature, 1)

	// Nothing to sign at all
	require.Error(t, signer.SignTransaction(&tron.Transaction{}))
}

func TestMnemonicDerivationIsDeterministic(t *testing.T) {
	first, err := NewKeySignerFromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	second, err := NewKeySignerFromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	require.Equal(t, first.Address(), second.Address())
	require.Equal(t, first.PrivateKeyHex(), second.PrivateKeyHex())

	// A passphrase changes the derived key
	withPassphrase, err := NewKeySignerFromMnemonic(testMnemonic, "secret")
	require.NoError(t, err)
	require.NotEqual(t, first.Address(), withPassphrase.Address())
}

func TestMnemonicValidation(t *testing.T) {
	_, err := NewKeySignerFromMnemonic("definitely not a valid phrase", "")
	require.Error(t, err)
}

func TestSignDigest(t *testing.T) {
	signer, err := GenerateKey()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	sig, err := signer.SignDigest(digest[:])
	require.NoError(t, err)
	require.Len(t, sig, 65)

	_, err = signer.SignDigest([]byte("short"))
	require.Error(t, err)
}
