package api

import (
	"os"
	"path/filepath"
	"strings"
)

// Network type constants
const (
	NetworkMainnet = "mainnet"
	NetworkShasta  = "shasta"
	NetworkNile    = "nile"
)

// Full node endpoints
const (
	// mainnet
	MainnetAPI = "https://api.trongrid.io"

	// testnets
	ShastaAPI = "https://api.shasta.trongrid.io"
	NileAPI   = "https://nile.trongrid.io"
)

// EndpointForNetwork returns the full node endpoint for a network name,
// defaulting to mainnet for anything unrecognized
func EndpointForNetwork(network string) string {
	switch network {
	case NetworkShasta:
		return ShastaAPI
	case NetworkNile:
		return NileAPI
	default:
		return MainnetAPI
	}
}

// CurrentNetwork returns the persisted network selection (mainnet, shasta
// or nile), defaulting to mainnet when no selection was saved
func CurrentNetwork() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return NetworkMainnet
	}

	data, err := os.ReadFile(filepath.Join(homeDir, ".meridian", "network.txt"))
	if err != nil {
		return NetworkMainnet
	}

	network := strings.TrimSpace(string(data))
	if network != NetworkMainnet && network != NetworkShasta && network != NetworkNile {
		return NetworkMainnet
	}
	return network
}

// SetCurrentNetwork persists the network selection to ~/.meridian/network.txt
func SetCurrentNetwork(network string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(homeDir, ".meridian")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, "network.txt"), []byte(network), 0600)
}
