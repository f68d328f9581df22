package api

// TRON full node client.
//
// Files:
//   config.go       - node endpoints and network constants
//   base.go         - core client (client struct, options, transport helpers)
//   errors.go       - typed errors returned by the client
//   types.go        - request/response struct definitions
//   transactions.go - transfers, broadcast, confirmation polling, account queries
//   contracts.go    - smart contract trigger/query/deploy and fee estimation
//   blocks.go       - block queries and the JSON-RPC block number
//
// Usage:
//   client, err := api.NewClient(api.MainnetAPI)           // from base.go
//   tx, err := client.Transfer(from, to, amount)           // from transactions.go
//   txid, err := client.BroadcastTransaction(tx)           // from transactions.go
//   info, err := client.AwaitConfirmation(txid)            // from transactions.go
//   resp, err := client.QueryContract(&api.MethodCall{...}) // from contracts.go
