package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridianhq/meridian/chains/tron"
)

const (
	testTxID    = "7c2d4206c03a883dd9066d620335dc1be272a8dc733cfa3f6d10308faa37facc"
	testAddrHex = "41a614f803b6fd780986a42c78ec9c7f77e6ded13c"
)

// newTestClient spins up a fake node and a client pointed at it with a
// poll interval short enough for tests
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, WithPollInterval(time.Millisecond))
	require.NoError(t, err)
	return client
}

func testAddress(t *testing.T) tron.Address {
	t.Helper()
	addr, err := tron.ParseAddress(testAddrHex)
	require.NoError(t, err)
	return addr
}

func testTransactionID(t *testing.T) tron.TransactionID {
	t.Helper()
	id, err := tron.ParseTransactionID(testTxID)
	require.NoError(t, err)
	return id
}

// signedTestTx builds a minimal broadcastable transaction
func signedTestTx(t *testing.T) *tron.Transaction {
	t.Helper()
	return &tron.Transaction{
		TxID: testTransactionID(t),
		RawData: tron.RawData{
			Contract: []tron.ContractEntry{{Type: "TransferContract"}},
		},
		Signature: []string{strings.Repeat("ab", 65)},
	}
}

// confirmedTxJSON is a finalized-view transaction with the given
// execution results
func confirmedTxJSON(ret string) string {
	return `{
		"txID": "` + testTxID + `",
		"raw_data": {"contract": [{"type": "TransferContract", "parameter": {"value": {"amount": 1}}}]},
		"ret": ` + ret + `
	}`
}

func TestNewClientInvalidURL(t *testing.T) {
	for _, input := range []string{"://bad", "not a url", "no-scheme.example.com"} {
		_, err := NewClient(input)
		require.ErrorIs(t, err, ErrInvalidURL, "input %q", input)
	}
}

func TestBroadcastTransaction(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/broadcasttransaction", func(w http.ResponseWriter, r *http.Request) {
		var tx tron.Transaction
		require.NoError(t, json.NewDecoder(r.Body).Decode(&tx))
		require.True(t, tx.Signed())
		w.Write([]byte(`{"result": true, "txid": "` + testTxID + `"}`))
	})
	client := newTestClient(t, mux)

	txid, err := client.BroadcastTransaction(signedTestTx(t))
	require.NoError(t, err)
	require.Equal(t, testTxID, txid.String())
}

func TestBroadcastTransactionRejectsEmptyContractList(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	_, err := client.BroadcastTransaction(&tron.Transaction{})
	require.Error(t, err)
}

func TestBroadcastTransactionErrorDecoding(t *testing.T) {
	hexMessage := hex.EncodeToString([]byte("validate signature error"))

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "hex encoded message is decoded",
			body:    `{"code": "SIGERROR", "message": "` + hexMessage + `"}`,
			message: "validate signature error",
		},
		{
			name:    "non-hex message is kept as is",
			body:    `{"code": "SIGERROR", "message": "not hex at all"}`,
			message: "not hex at all",
		},
		{
			name:    "missing message falls back to a generic text",
			body:    `{"code": "SIGERROR"}`,
			message: "Unknown error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/wallet/broadcasttransaction", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			client := newTestClient(t, mux)

			_, err := client.BroadcastTransaction(signedTestTx(t))

			var broadcastErr *BroadcastError
			require.ErrorAs(t, err, &broadcastErr)
			require.Equal(t, "SIGERROR", broadcastErr.Code)
			require.Equal(t, tt.message, broadcastErr.Message)
		})
	}
}

func TestBroadcastTransactionTransportError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/broadcasttransaction", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	client := newTestClient(t, mux)

	_, err := client.BroadcastTransaction(signedTestTx(t))

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestTransferRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/createtransaction", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, testAddrHex, payload["owner_address"])
		require.Equal(t, testAddrHex, payload["to_address"])
		require.Equal(t, float64(1000000), payload["amount"])
		require.Equal(t, strings.Repeat("72", 64), payload["extra_data"])

		w.Write([]byte(`{
			"txID": "` + testTxID + `",
			"raw_data": {"contract": [{"type": "TransferContract"}]},
			"raw_data_hex": "0a02a1b2"
		}`))
	})
	client := newTestClient(t, mux)

	addr := testAddress(t)
	tx, err := client.Transfer(addr, addr, 1000000)
	require.NoError(t, err)
	require.Equal(t, testTxID, tx.TxID.String())
	require.Len(t, tx.RawData.Contract, 1)
}

func TestCreateAccountRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/createaccount", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, testAddrHex, payload["owner_address"])
		require.Equal(t, testAddrHex, payload["account_address"])

		w.Write([]byte(`{
			"txID": "` + testTxID + `",
			"raw_data": {"contract": [{"type": "AccountCreateContract"}]}
		}`))
	})
	client := newTestClient(t, mux)

	addr := testAddress(t)
	tx, err := client.CreateAccount(addr, addr)
	require.NoError(t, err)
	require.Equal(t, "AccountCreateContract", tx.RawData.Contract[0].Type)
}

func TestSolidityGetTxByIDNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/walletsolidity/gettransactionbyid", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`)) // unknown or unconfirmed: no txID field
	})
	client := newTestClient(t, mux)

	info, err := client.SolidityGetTxByID(testTransactionID(t))
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestAwaitConfirmationSuccessAfterPolling(t *testing.T) {
	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/walletsolidity/gettransactionbyid", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(confirmedTxJSON(`[{"contractRet": "SUCCESS"}]`)))
	})
	client := newTestClient(t, mux)

	info, err := client.AwaitConfirmation(testTransactionID(t))
	require.NoError(t, err)
	require.Equal(t, testTxID, info.TxID.String())
	require.Equal(t, int64(3), calls.Load())
}

func TestAwaitConfirmationFailsImmediatelyOnExplicitFailure(t *testing.T) {
	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/walletsolidity/gettransactionbyid", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(confirmedTxJSON(`[{"contractRet": "REVERT"}]`)))
	})
	client := newTestClient(t, mux)

	_, err := client.AwaitConfirmation(testTransactionID(t))

	var txErr *TxFailedError
	require.ErrorAs(t, err, &txErr)
	require.Equal(t, "REVERT", txErr.Reason)
	require.Equal(t, int64(1), calls.Load(), "explicit failure must not be retried")
}

func TestAwaitConfirmationEmptyRet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/walletsolidity/gettransactionbyid", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(confirmedTxJSON(`[]`)))
	})
	client := newTestClient(t, mux)

	_, err := client.AwaitConfirmation(testTransactionID(t))

	var txErr *TxFailedError
	require.ErrorAs(t, err, &txErr)
	require.Equal(t, "empty ret", txErr.Reason)
}

func TestAwaitConfirmationContextCancellation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/walletsolidity/gettransactionbyid", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`)) // never confirms
	})
	client := newTestClient(t, mux)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.AwaitConfirmationContext(ctx, testTransactionID(t))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwaitConfirmationStopsOnTransportError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/walletsolidity/gettransactionbyid", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	client := newTestClient(t, mux)

	_, err := client.AwaitConfirmation(testTransactionID(t))

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestGetAccountBalance(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		balance uint64
		err     error
	}{
		{name: "present balance", body: `{"balance": 500000}`, balance: 500000},
		{name: "zero balance on an activated account", body: `{"balance": 0}`, balance: 0},
		{name: "absent balance means no account", body: `{}`, err: ErrAccountNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/wallet/getaccount", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			client := newTestClient(t, mux)

			balance, err := client.GetAccountBalance(testAddress(t))
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.balance, balance)
		})
	}
}

func TestGetAccountResources(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/getaccountresource", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"freeNetLimit": 600, "NetLimit": 1200, "EnergyLimit": 900}`))
	})
	client := newTestClient(t, mux)

	resources, err := client.GetAccountResources(testAddress(t))
	require.NoError(t, err)
	require.Equal(t, uint64(600), resources.FreeNetLimit)
	require.Equal(t, uint64(1200), resources.NetLimit)
	require.Equal(t, uint64(900), resources.EnergyLimit)
}

func TestGetChainParametersSkipsValuelessEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/getchainparameters", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{"chainParameter": [
			{"key": "getEnergyFee", "value": 420},
			{"key": "getMaintenanceTimeInterval"},
			{"key": "getAllowTvmTransferTrc10", "value": 0}
		]}`))
	})
	client := newTestClient(t, mux)

	params, err := client.GetChainParameters()
	require.NoError(t, err)
	require.Equal(t, map[string]int64{
		"getEnergyFee":             420,
		"getAllowTvmTransferTrc10": 0,
	}, params)
}

func TestGetTxInfoByID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/gettransactioninfobyid", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "` + testTxID + `",
			"fee": 1100000,
			"blockNumber": 32880248,
			"blockTimeStamp": 1681368027000,
			"receipt": {"net_fee": 100000, "energy_usage_total": 130000}
		}`))
	})
	client := newTestClient(t, mux)

	info, err := client.GetTxInfoByID(testTransactionID(t))
	require.NoError(t, err)
	require.Equal(t, testTxID, info.ID)
	require.Equal(t, uint64(1100000), info.Fee)
	require.NotNil(t, info.Receipt.NetFee)
	require.Equal(t, uint64(100000), *info.Receipt.NetFee)
	require.Nil(t, info.Receipt.EnergyFee)
}

func TestGetTxInfoByBlockNum(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/gettransactioninfobyblocknum", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, float64(32880248), payload["num"])

		w.Write([]byte(`[{"id": "` + testTxID + `", "blockNumber": 32880248, "receipt": {}}]`))
	})
	client := newTestClient(t, mux)

	infos, err := client.GetTxInfoByBlockNum(32880248)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, uint64(32880248), infos[0].BlockNumber)
}

func TestDecodeHexMessage(t *testing.T) {
	require.Equal(t, "test", decodeHexMessage("74657374"))
	require.Equal(t, "not hex", decodeHexMessage("not hex"))
	require.Equal(t, "Unknown error", decodeHexMessage(""))
}
