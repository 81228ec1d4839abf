package hoosat

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"lukechampine.com/blake3"
)

// Network names
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// Bech32 human-readable prefixes per network. Hoosat hashes public keys with
// BLAKE3 (not kHash like Kaspa).
const (
	PrefixMainnet = "hoosat"
	PrefixTestnet = "hoosattest"
)

// addressHashLen is the number of BLAKE3 output bytes encoded in an address
const addressHashLen = 20

// Hoosat addresses separate prefix and payload with ':' (cashaddr
// convention), while the bech32 codec uses '1'. The checksum only covers the
// expanded prefix and data, so the separator can be swapped freely.
const (
	addressSeparator = ":"
	bech32Separator  = "1"
)

// NetworkPrefix returns the bech32 prefix for a network name.
func NetworkPrefix(network string) (string, error) {
	switch network {
	case NetworkMainnet:
		return PrefixMainnet, nil
	case NetworkTestnet:
		return PrefixTestnet, nil
	default:
		return "", fmt.Errorf("invalid network: %s", network)
	}
}

// AddressFromPublicKey encodes a public key into a bech32 Hoosat address.
func AddressFromPublicKey(publicKey []byte, network string) (string, error) {
	prefix, err := NetworkPrefix(network)
	if err != nil {
		return "", err
	}

	digest := blake3.Sum256(publicKey)
	payload := digest[:addressHashLen]

	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert address bits: %w", err)
	}

	encoded, err := bech32.Encode(prefix, converted)
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}

	return prefix + addressSeparator + encoded[len(prefix)+1:], nil
}

// AddressInfo describes a decoded address
type AddressInfo struct {
	Address string `json:"address"`
	Network string `json:"network"`
	Prefix  string `json:"prefix"`
	Payload string `json:"payload"` // hex of the BLAKE3 hash fragment
}

// DecodeAddress decodes and validates a Hoosat address on any known network.
func DecodeAddress(address string) (*AddressInfo, error) {
	sep := strings.Index(address, addressSeparator)
	if sep < 1 {
		return nil, fmt.Errorf("invalid address: missing %q separator", addressSeparator)
	}

	prefix, data, err := bech32.Decode(address[:sep] + bech32Separator + address[sep+1:])
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	var network string
	switch prefix {
	case PrefixMainnet:
		network = NetworkMainnet
	case PrefixTestnet:
		network = NetworkTestnet
	default:
		return nil, fmt.Errorf("unknown address prefix: %s", prefix)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty address payload")
	}

	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("invalid address payload: %w", err)
	}

	return &AddressInfo{
		Address: address,
		Network: network,
		Prefix:  prefix,
		Payload: hex.EncodeToString(payload),
	}, nil
}

// ValidateAddress reports whether the address is valid for the given network.
func ValidateAddress(address, network string) bool {
	info, err := DecodeAddress(address)
	if err != nil {
		return false
	}
	return info.Network == network
}

// HasKnownPrefix reports whether the string carries a Hoosat address prefix,
// without verifying the checksum. Used for cheap format checks on address
// book entries and resolver input.
func HasKnownPrefix(address string) bool {
	return strings.HasPrefix(address, PrefixMainnet+addressSeparator) ||
		strings.HasPrefix(address, PrefixTestnet+addressSeparator)
}
